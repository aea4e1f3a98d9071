package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/internal/models"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
)

// Sync outcomes reported to the observer.
const (
	SyncCommitted = "committed"
	SyncStale     = "stale"
	SyncFailed    = "failed"
)

// FetchFunc resolves a descriptor against the backend.
type FetchFunc[T any] func(ctx context.Context, d models.QueryDescriptor) ([]T, error)

// Snapshot is the committed result of a view. It is never mutated after
// commit, so callers may share it.
type Snapshot[T any] struct {
	Descriptor  models.QueryDescriptor
	Items       []T
	CommittedAt time.Time
}

// SyncObserver receives the outcome of each fetch.
type SyncObserver interface {
	ObserveSync(view models.ViewName, outcome string, duration time.Duration)
}

type viewState[T any] struct {
	fetch     FetchFunc[T]
	mounted   bool
	issued    uint64
	committed uint64
	last      *models.QueryDescriptor
	snapshot  *Snapshot[T]
}

// SyncCoordinator issues fetches per view and commits a result only when no
// fetch with a higher sequence number for the same view has committed first.
// The lock covers bookkeeping only and is released across the fetch.
type SyncCoordinator[T any] struct {
	mu       sync.Mutex
	views    map[models.ViewName]*viewState[T]
	observer SyncObserver
	logger   *zap.Logger
	now      func() time.Time
}

// NewSyncCoordinator constructs a coordinator with no views.
func NewSyncCoordinator[T any](observer SyncObserver, logger *zap.Logger) *SyncCoordinator[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncCoordinator[T]{
		views:    make(map[models.ViewName]*viewState[T]),
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// Bind attaches the fetch function for a view. Binding again replaces the
// function but keeps sequencing state.
func (c *SyncCoordinator[T]) Bind(view models.ViewName, fetch FetchFunc[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.views[view]
	if !ok {
		st = &viewState[T]{}
		c.views[view] = st
	}
	st.fetch = fetch
}

// Synchronize issues a fetch for d under the next sequence number of view.
// A superseded result returns the fresher committed snapshot together with
// ErrStaleResponse. A failed fetch returns ErrFetchFailed and leaves the
// committed snapshot untouched.
func (c *SyncCoordinator[T]) Synchronize(ctx context.Context, view models.ViewName, d models.QueryDescriptor) (*Snapshot[T], error) {
	c.mu.Lock()
	st, ok := c.views[view]
	if !ok || st.fetch == nil {
		c.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "view "+string(view)+" is not bound")
	}
	st.mounted = true
	st.issued++
	issued := d.WithSeq(st.issued)
	issued.View = view
	st.last = &issued
	fetch := st.fetch
	c.mu.Unlock()

	start := c.now()
	items, err := fetch(ctx, issued)
	elapsed := c.now().Sub(start)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.observe(view, SyncFailed, elapsed)
		c.logger.Warn("view fetch failed", zap.String("view", string(view)), zap.Uint64("seq", issued.Seq), zap.Error(err))
		return st.snapshot, fetchFailed(err, "failed to load "+string(view))
	}

	if issued.Seq <= st.committed {
		c.observe(view, SyncStale, elapsed)
		c.logger.Debug("discarding stale view response", zap.String("view", string(view)), zap.Uint64("seq", issued.Seq), zap.Uint64("committed", st.committed))
		return st.snapshot, appErrors.ErrStaleResponse
	}

	st.committed = issued.Seq
	st.snapshot = &Snapshot[T]{Descriptor: issued, Items: items, CommittedAt: c.now()}
	c.observe(view, SyncCommitted, elapsed)
	return st.snapshot, nil
}

// Refresh re-issues the last descriptor of a mounted view. It reports false
// without fetching when the view is unknown or not mounted.
func (c *SyncCoordinator[T]) Refresh(ctx context.Context, view models.ViewName) (bool, error) {
	c.mu.Lock()
	st, ok := c.views[view]
	if !ok || !st.mounted || st.last == nil {
		c.mu.Unlock()
		return false, nil
	}
	last := *st.last
	c.mu.Unlock()

	_, err := c.Synchronize(ctx, view, last)
	if err != nil && !errors.Is(err, appErrors.ErrStaleResponse) {
		return true, err
	}
	return true, nil
}

// Snapshot returns the committed snapshot of view, if any.
func (c *SyncCoordinator[T]) Snapshot(view models.ViewName) (*Snapshot[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.views[view]
	if !ok || st.snapshot == nil {
		return nil, false
	}
	return st.snapshot, true
}

// Mounted reports whether view has been synchronized since its last teardown.
func (c *SyncCoordinator[T]) Mounted(view models.ViewName) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.views[view]
	return ok && st.mounted
}

// Teardown discards the committed snapshot and prevents fetches already in
// flight from committing.
func (c *SyncCoordinator[T]) Teardown(view models.ViewName) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.views[view]
	if !ok {
		return
	}
	st.mounted = false
	st.last = nil
	st.snapshot = nil
	st.committed = st.issued
}

func (c *SyncCoordinator[T]) observe(view models.ViewName, outcome string, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveSync(view, outcome, elapsed)
	}
}
