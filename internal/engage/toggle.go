// Package engage models a single like/favorite control as an explicit state
// machine: optimistic local flip, one idempotent request in flight at most,
// full rollback when the request fails. Like and favorite are separate
// Toggle instances and share no state.
package engage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrUnauthenticated signals the caller to redirect to login. No
	// request is issued.
	ErrUnauthenticated = errors.New("engage: viewer is not authenticated")

	// ErrInFlight rejects a flip issued while the previous one has not
	// resolved. Flips are never interleaved.
	ErrInFlight = errors.New("engage: toggle request already in flight")
)

// DefaultTimeout bounds a toggle request; expiry counts as failure and
// triggers rollback.
const DefaultTimeout = 10 * time.Second

type State int

const (
	StateIdle State = iota
	StatePending
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "idle"
	}
}

// RequestFunc issues the set-membership flip against the backend. It must
// be idempotent in the toggle sense: the server flips membership, it never
// increments blindly.
type RequestFunc func(ctx context.Context) error

// Toggle tracks the viewer-local state of one engagement control on one
// lesson: whether the viewer is currently in the set, and the displayed
// counter.
type Toggle struct {
	mu      sync.Mutex
	on      bool
	count   int
	state   State
	pending bool
	timeout time.Duration
	send    RequestFunc
}

// NewToggle seeds the control from the lesson as fetched (membership of the
// viewer in the like/favorite set and the current counter).
func NewToggle(on bool, count int, send RequestFunc) *Toggle {
	return &Toggle{on: on, count: count, timeout: DefaultTimeout, send: send}
}

// WithTimeout overrides the request timeout.
func (t *Toggle) WithTimeout(d time.Duration) *Toggle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d > 0 {
		t.timeout = d
	}
	return t
}

// Flip applies the optimistic update and issues exactly one request. On
// failure the boolean and the counter revert to their pre-flip values and
// the error is returned; there is no automatic retry.
func (t *Toggle) Flip(ctx context.Context, viewerEmail string) error {
	if viewerEmail == "" {
		return ErrUnauthenticated
	}

	t.mu.Lock()
	if t.pending {
		t.mu.Unlock()
		return ErrInFlight
	}
	wasOn, wasCount := t.on, t.count
	t.on = !wasOn
	if t.on {
		t.count = wasCount + 1
	} else {
		t.count = wasCount - 1
	}
	t.pending = true
	t.state = StatePending
	timeout := t.timeout
	t.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := t.send(reqCtx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = false
	if err != nil {
		t.on = wasOn
		t.count = wasCount
		t.state = StateRolledBack
		return fmt.Errorf("engage: toggle request failed: %w", err)
	}
	t.state = StateCommitted
	return nil
}

// On reports whether the viewer is currently (optimistically) in the set.
func (t *Toggle) On() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}

// Count returns the displayed counter.
func (t *Toggle) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

func (t *Toggle) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
