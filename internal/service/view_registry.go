package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/internal/models"
)

// RefreshFunc re-synchronizes a view. It reports false when the view is not
// mounted and nothing was fetched.
type RefreshFunc func(ctx context.Context) (bool, error)

// InvalidationObserver counts refreshes triggered by invalidation.
type InvalidationObserver interface {
	ObserveInvalidation(view models.ViewName, refreshed bool, err error)
}

// InvalidationReport lists what an Invalidate call actually refreshed.
type InvalidationReport struct {
	Refreshed []models.ViewName
	Failed    map[models.ViewName]error
}

// ViewRegistry maps view names to refresh functions for one console session.
type ViewRegistry struct {
	mu       sync.RWMutex
	views    map[models.ViewName]RefreshFunc
	observer InvalidationObserver
	logger   *zap.Logger
}

// NewViewRegistry constructs an empty registry.
func NewViewRegistry(observer InvalidationObserver, logger *zap.Logger) *ViewRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewRegistry{views: make(map[models.ViewName]RefreshFunc), observer: observer, logger: logger}
}

// Register binds name to fn, replacing any earlier registration.
func (r *ViewRegistry) Register(name models.ViewName, fn RefreshFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[name] = fn
}

// Registered reports whether name has a refresh function.
func (r *ViewRegistry) Registered(name models.ViewName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.views[name]
	return ok
}

// Invalidate refreshes each named view once. Unknown and unmounted views are
// skipped; a failed refresh does not stop the others.
func (r *ViewRegistry) Invalidate(ctx context.Context, names ...models.ViewName) InvalidationReport {
	report := InvalidationReport{}
	seen := make(map[models.ViewName]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		r.mu.RLock()
		fn, ok := r.views[name]
		r.mu.RUnlock()
		if !ok {
			continue
		}

		refreshed, err := fn(ctx)
		if r.observer != nil {
			r.observer.ObserveInvalidation(name, refreshed, err)
		}
		if err != nil {
			if report.Failed == nil {
				report.Failed = make(map[models.ViewName]error)
			}
			report.Failed[name] = err
			r.logger.Warn("view refresh after transition failed", zap.String("view", string(name)), zap.Error(err))
			continue
		}
		if refreshed {
			report.Refreshed = append(report.Refreshed, name)
		}
	}
	return report
}
