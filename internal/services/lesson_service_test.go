package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifelessonsapp/lifelessons-backend/internal/access"
	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/feed"
	"github.com/lifelessonsapp/lifelessons-backend/internal/models"
)

func TestToggleLikeIsMembershipFlip(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	seedUser(t, db, "fan@example.com", "user", false)
	lesson := seedLesson(t, db, "author@example.com", "Public", "Free")

	liked, count, err := svc.ToggleLike(lesson.ID, "fan@example.com")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	// Second flip removes membership and restores the counter exactly.
	liked, count, err = svc.ToggleLike(lesson.ID, "fan@example.com")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)

	var rows int64
	db.Model(&models.LessonLike{}).Where("lesson_id = ?", lesson.ID).Count(&rows)
	assert.Zero(t, rows)
}

func TestToggleLikeAndFavoriteAreIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	lesson := seedLesson(t, db, "author@example.com", "Public", "Free")

	_, _, err := svc.ToggleLike(lesson.ID, "fan@example.com")
	require.NoError(t, err)
	favorited, count, err := svc.ToggleFavorite(lesson.ID, "fan@example.com")
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, 1, count)

	// Unliking leaves the favorite untouched.
	_, _, err = svc.ToggleLike(lesson.ID, "fan@example.com")
	require.NoError(t, err)

	var reloaded models.Lesson
	require.NoError(t, db.First(&reloaded, "id = ?", lesson.ID).Error)
	assert.Equal(t, 0, reloaded.LikesCount)
	assert.Equal(t, 1, reloaded.FavoritesCount)
}

func TestToggleRequiresIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	lesson := seedLesson(t, db, "author@example.com", "Public", "Free")

	_, _, err := svc.ToggleLike(lesson.ID, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGetEnforcesVerdict(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	private := seedLesson(t, db, "owner@example.com", "Private", "Free")
	premium := seedLesson(t, db, "owner@example.com", "Public", "Premium")

	// Private lessons do not leak their existence.
	_, err := svc.Get(asViewer("stranger@example.com", "user", false), private.ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)

	detail, err := svc.Get(asViewer("owner@example.com", "user", false), private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, detail.ID)

	_, err = svc.Get(asViewer("free@example.com", "user", false), premium.ID)
	assert.ErrorIs(t, err, ErrPremiumRequired)

	_, err = svc.Get(asViewer("paid@example.com", "user", true), premium.ID)
	assert.NoError(t, err)
}

func TestDeleteCascadesEngagement(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	lesson := seedLesson(t, db, "owner@example.com", "Public", "Free")

	_, _, err := svc.ToggleLike(lesson.ID, "fan@example.com")
	require.NoError(t, err)
	_, _, err = svc.ToggleFavorite(lesson.ID, "fan@example.com")
	require.NoError(t, err)
	_, err = svc.AddComment(asViewer("fan@example.com", "user", false), lesson.ID, "this one stuck with me")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.LessonReport{
		ID: uuid.New(), LessonID: lesson.ID, ReporterEmail: "r@example.com", Reason: "spam",
	}).Error)

	// A stranger may not delete.
	err = svc.Delete(asViewer("stranger@example.com", "user", false), lesson.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(asViewer("owner@example.com", "user", false), lesson.ID))

	var n int64
	for _, model := range []interface{}{
		&models.Lesson{}, &models.LessonLike{}, &models.LessonFavorite{},
		&models.LessonComment{}, &models.LessonReport{},
	} {
		db.Model(model).Count(&n)
		assert.Zero(t, n)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	author := asViewer("author@example.com", "user", false)

	cases := []struct {
		name string
		req  dto.CreateLessonRequest
	}{
		{"short title", dto.CreateLessonRequest{Title: "ab", Description: "long enough text", Category: "Career", Tone: "Sad"}},
		{"short description", dto.CreateLessonRequest{Title: "Valid", Description: "short", Category: "Career", Tone: "Sad"}},
		{"bad category", dto.CreateLessonRequest{Title: "Valid", Description: "long enough text", Category: "Cooking", Tone: "Sad"}},
		{"bad tone", dto.CreateLessonRequest{Title: "Valid", Description: "long enough text", Category: "Career", Tone: "Angry"}},
		{"bad privacy", dto.CreateLessonRequest{Title: "Valid", Description: "long enough text", Category: "Career", Tone: "Sad", Privacy: "Hidden"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(author, &tc.req)
			assert.Error(t, err)
		})
	}

	_, err := svc.Create(access.Viewer{}, &dto.CreateLessonRequest{
		Title: "Valid", Description: "long enough text", Category: "Career", Tone: "Sad",
	})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	lesson, err := svc.Create(author, &dto.CreateLessonRequest{
		Title: "Valid", Description: "long enough text", Category: "Career", Tone: "Sad",
	})
	require.NoError(t, err)
	assert.Equal(t, "Public", lesson.Privacy)
	assert.Equal(t, "Free", lesson.AccessLevel)
}

func TestUpdateOwnerOrAdminOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	lesson := seedLesson(t, db, "owner@example.com", "Public", "Free")

	title := "A better title"
	_, err := svc.Update(asViewer("stranger@example.com", "user", false), lesson.ID, &dto.UpdateLessonRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(asViewer("mod@example.com", "admin", false), lesson.ID, &dto.UpdateLessonRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestAddCommentIsAppendOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	seedUser(t, db, "fan@example.com", "user", false)
	lesson := seedLesson(t, db, "owner@example.com", "Public", "Free")
	fan := asViewer("fan@example.com", "user", false)

	_, err := svc.AddComment(fan, lesson.ID, "")
	assert.Error(t, err)

	comment, err := svc.AddComment(fan, lesson.ID, "needed this today")
	require.NoError(t, err)
	assert.Equal(t, "fan", comment.UserName)

	_, err = svc.AddComment(fan, lesson.ID, "and again")
	require.NoError(t, err)

	detail, err := svc.Get(fan, lesson.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 2)
	// Newest first.
	assert.Equal(t, "and again", detail.Comments[0].Text)
}

func TestFeedExcludesPrivateAndAnnotates(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	seedLesson(t, db, "owner@example.com", "Public", "Free")
	seedLesson(t, db, "owner@example.com", "Private", "Free")
	seedLesson(t, db, "owner@example.com", "Public", "Premium")

	page, err := svc.Feed(asViewer("stranger@example.com", "user", false), feed.Filters{}, feed.SortNewest, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalItems)

	locked := 0
	for _, entry := range page.Items {
		assert.NotEqual(t, "Private", entry.Privacy)
		if entry.Verdict.Locked {
			locked++
		}
	}
	assert.Equal(t, 1, locked)

	// The owner sees all three.
	page, err = svc.Feed(asViewer("owner@example.com", "user", false), feed.Filters{}, feed.SortNewest, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)
}

func TestFeedFlaggedFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	clean := seedLesson(t, db, "owner@example.com", "Public", "Free")
	flagged := seedLesson(t, db, "owner@example.com", "Public", "Free")
	require.NoError(t, db.Create(&models.LessonReport{
		ID: uuid.New(), LessonID: flagged.ID, ReporterEmail: "r@example.com", Reason: "spam",
	}).Error)

	yes := true
	page, err := svc.Feed(asViewer("mod@example.com", "admin", false), feed.Filters{Flagged: &yes}, feed.SortNewest, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, flagged.ID, page.Items[0].ID)

	no := false
	page, err = svc.Feed(asViewer("mod@example.com", "admin", false), feed.Filters{Flagged: &no}, feed.SortNewest, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, clean.ID, page.Items[0].ID)
}

func TestMyFavoritesFollowsToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonService(db)
	lesson := seedLesson(t, db, "owner@example.com", "Public", "Free")

	_, _, err := svc.ToggleFavorite(lesson.ID, "fan@example.com")
	require.NoError(t, err)

	favorites, err := svc.MyFavorites("fan@example.com")
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	_, _, err = svc.ToggleFavorite(lesson.ID, "fan@example.com")
	require.NoError(t, err)

	favorites, err = svc.MyFavorites("fan@example.com")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}
