package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"psched/internal/modules/task/domain"
	taskout "psched/internal/modules/task/port/out"
	"psched/internal/platform/clock"
)

// RefreshInterval is the minimum gap between two full fetches. Calls inside
// the window, or while a fetch is in flight, are no-ops.
const RefreshInterval = time.Second

// CacheService is the single source of truth for the current user's task list
// within one process. All mutation passes through Refresh/Add/Edit/Delete;
// reads take a snapshot. Add forces a refresh so server-assigned ids always
// land in the cache; Edit and Delete patch locally from their own responses.
//
// Concurrent Add/Edit/Delete carry no mutual exclusion against each other:
// backend response order decides the final state, matching the system this
// client talks to.
type CacheService struct {
	clock clock.Clock
	api   taskout.API
	ident taskout.Identity

	mu          sync.Mutex
	tasks       []domain.Task
	lastError   string
	loading     bool
	refreshing  bool
	lastRefresh time.Time
	subs        []chan domain.Invalidation
}

func NewCacheService(clk clock.Clock, api taskout.API, ident taskout.Identity) *CacheService {
	return &CacheService{clock: clk, api: api, ident: ident}
}

// Refresh fetches the full task list, replacing the cache wholesale. Guarded
// against redundant calls; a guarded call returns the current snapshot.
func (s *CacheService) Refresh(ctx context.Context) ([]domain.Task, error) {
	now := s.clock.Now()

	s.mu.Lock()
	if s.refreshing || now.Sub(s.lastRefresh) < RefreshInterval {
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		return snapshot, nil
	}
	s.refreshing = true
	s.loading = true
	s.mu.Unlock()

	return s.fetch(ctx)
}

// forceRefresh skips the interval guard; used after a successful create and
// for external invalidations. An in-flight fetch still wins.
func (s *CacheService) forceRefresh(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	if s.refreshing {
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		return snapshot, nil
	}
	s.refreshing = true
	s.loading = true
	s.mu.Unlock()

	return s.fetch(ctx)
}

func (s *CacheService) fetch(ctx context.Context) ([]domain.Task, error) {
	userID, err := s.ident.CurrentUserID(ctx)
	if err != nil {
		s.finishRefresh(nil, fmt.Errorf("failed to fetch tasks: %w", err))
		return nil, err
	}
	tasks, err := s.api.List(ctx, userID)
	if err != nil {
		s.finishRefresh(nil, fmt.Errorf("failed to fetch tasks: %w", err))
		return nil, err
	}
	s.finishRefresh(tasks, nil)
	return tasks, nil
}

// finishRefresh closes the refreshing window. On failure the previous cache
// value is kept, stale but present.
func (s *CacheService) finishRefresh(tasks []domain.Task, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing = false
	s.loading = false
	if err != nil {
		s.lastError = err.Error()
		return
	}
	s.tasks = tasks
	s.lastError = ""
	s.lastRefresh = s.clock.Now()
}

// Add stamps the task with the current user, creates it server-side, and
// forces a full refresh so the cache reflects the server-assigned id and any
// normalization.
func (s *CacheService) Add(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := task.Validate(); err != nil {
		s.recordError(fmt.Errorf("failed to add task: %w", err))
		return domain.Task{}, err
	}
	userID, err := s.ident.CurrentUserID(ctx)
	if err != nil {
		s.recordError(fmt.Errorf("failed to add task: %w", err))
		return domain.Task{}, err
	}
	task.UserID = userID

	created, err := s.api.Create(ctx, task)
	if err != nil {
		s.recordError(fmt.Errorf("failed to add task: %w", err))
		return domain.Task{}, err
	}
	// A refresh failure here leaves the cache stale; the create itself stuck.
	_, _ = s.forceRefresh(ctx)
	return created, nil
}

// Edit updates the task server-side and patches the matching cache entry with
// the server's returned representation, avoiding a full round trip.
func (s *CacheService) Edit(ctx context.Context, id int, task domain.Task) (domain.Task, error) {
	if err := task.Validate(); err != nil {
		s.recordError(fmt.Errorf("failed to edit task: %w", err))
		return domain.Task{}, err
	}
	updated, err := s.api.Update(ctx, id, task)
	if err != nil {
		s.recordError(fmt.Errorf("failed to edit task: %w", err))
		return domain.Task{}, err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = updated
			break
		}
	}
	s.lastError = ""
	s.mu.Unlock()
	return updated, nil
}

// Delete removes the task server-side, then drops it locally without a
// refresh. The error is recorded for display either way.
func (s *CacheService) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, id); err != nil {
		s.recordError(fmt.Errorf("failed to delete task: %w", err))
		return err
	}

	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// Tasks returns the cached snapshot.
func (s *CacheService) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *CacheService) State() (loading, refreshing bool, lastError string, lastRefresh time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading, s.refreshing, s.lastError, s.lastRefresh
}

// Subscribe returns a channel delivering external-mutation signals. Slow
// subscribers drop events rather than blocking the publisher.
func (s *CacheService) Subscribe() <-chan domain.Invalidation {
	ch := make(chan domain.Invalidation, 4)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// InvalidateExternal publishes the signal and forces exactly one refresh.
func (s *CacheService) InvalidateExternal(ctx context.Context, source string) error {
	event := domain.Invalidation{Source: source, At: s.clock.Now()}
	s.mu.Lock()
	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
		}
	}
	s.mu.Unlock()

	_, err := s.forceRefresh(ctx)
	return err
}

func (s *CacheService) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *CacheService) snapshotLocked() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
