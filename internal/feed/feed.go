// Package feed composes the public lesson feed: filtering, sorting and
// pagination over an already-fetched collection. It performs no I/O; the
// caller fetches the raw collection and passes it in along with the viewer
// the feed is being built for.
package feed

import (
	"sort"
	"strings"

	"github.com/lifelessonsapp/lifelessons-backend/internal/access"
	"github.com/lifelessonsapp/lifelessons-backend/internal/models"
)

// DefaultPageSize matches the card grid of the reference UI. Callers may
// override it per request.
const DefaultPageSize = 6

// Filters are AND-combined; zero values pass everything through.
// Flagged is tri-state: nil = any, true = reported only, false = clean only.
type Filters struct {
	Search   string
	Category string
	Tone     string
	Privacy  string
	Flagged  *bool
}

type Sort string

const (
	SortNewest    Sort = "newest"
	SortMostSaved Sort = "mostSaved"
)

// Entry is a lesson annotated with the visibility verdict for the viewer
// the feed was composed for. Locked entries are rendered obscured.
type Entry struct {
	models.Lesson
	Verdict access.Verdict `json:"verdict"`
}

type Page struct {
	Items       []Entry `json:"items"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	TotalItems  int     `json:"totalItems"`
}

// Compose annotates, filters, sorts and paginates lessons for one viewer.
// Lessons whose verdict is invisible (private, not owned) never appear in
// the output, regardless of filters. Requesting a page beyond the last one
// yields an empty item list, not an error.
func Compose(lessons []models.Lesson, viewer access.Viewer, f Filters, s Sort, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	entries := make([]Entry, 0, len(lessons))
	for _, l := range lessons {
		verdict := access.Evaluate(viewer, access.Resource{
			CreatorEmail: l.CreatorEmail,
			Privacy:      access.Privacy(l.Privacy),
			AccessLevel:  access.AccessLevel(l.AccessLevel),
		})
		if !verdict.Visible {
			continue
		}
		if !matches(l, f) {
			continue
		}
		entries = append(entries, Entry{Lesson: l, Verdict: verdict})
	}

	switch s {
	case SortMostSaved:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].FavoritesCount != entries[j].FavoritesCount {
				return entries[i].FavoritesCount > entries[j].FavoritesCount
			}
			// Deterministic tie-break: newest first.
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	}

	total := len(entries)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return Page{Items: []Entry{}, CurrentPage: page, TotalPages: totalPages, TotalItems: total}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Page{Items: entries[start:end], CurrentPage: page, TotalPages: totalPages, TotalItems: total}
}

func matches(l models.Lesson, f Filters) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(l.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.Tone != "" && l.Tone != f.Tone {
		return false
	}
	if f.Privacy != "" && l.Privacy != f.Privacy {
		return false
	}
	if f.Flagged != nil && l.IsFlagged != *f.Flagged {
		return false
	}
	return true
}
