// Package cache holds in-process read caches in front of the repositories.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
)

// loadTimeout bounds a shared load once it no longer follows any caller's context
const loadTimeout = 30 * time.Second

// EntryStore keeps one snapshot of each user's entries. Writers call
// Invalidate after every change; a load that overlaps an invalidation is
// returned to its caller but not stored.
type EntryStore struct {
	repo   repositories.EntryRepository
	logger *slog.Logger

	mu        sync.RWMutex
	snapshots map[string][]models.Entry // userID -> newest-first entries
	gens      map[string]uint64         // userID -> invalidation count

	loads singleflight.Group
}

// NewEntryStore creates an empty store over repo
func NewEntryStore(repo repositories.EntryRepository, logger *slog.Logger) *EntryStore {
	return &EntryStore{
		repo:      repo,
		logger:    logger,
		snapshots: make(map[string][]models.Entry),
		gens:      make(map[string]uint64),
	}
}

var _ repositories.EntryStore = (*EntryStore)(nil)

// Entries returns the user's entries, newest first. The returned slice is
// a copy and may be reordered by the caller. A caller whose ctx ends stops
// waiting; the load it started keeps running for everyone else.
func (s *EntryStore) Entries(ctx context.Context, userID string) ([]models.Entry, error) {
	s.mu.RLock()
	snapshot, ok := s.snapshots[userID]
	s.mu.RUnlock()
	if ok {
		return clone(snapshot), nil
	}

	ch := s.loads.DoChan(userID, func() (interface{}, error) {
		// Joined callers share this load, so it must not end with the
		// first caller's request.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		s.mu.RLock()
		gen := s.gens[userID]
		s.mu.RUnlock()

		entries, err := s.repo.ListByUser(loadCtx, userID)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.gens[userID] == gen {
			s.snapshots[userID] = entries
		}
		s.mu.Unlock()

		s.logger.Debug("entry snapshot loaded", "user_id", userID, "count", len(entries))
		return entries, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return clone(res.Val.([]models.Entry)), nil
	}
}

// Invalidate drops the user's snapshot
func (s *EntryStore) Invalidate(userID string) {
	s.mu.Lock()
	delete(s.snapshots, userID)
	s.gens[userID]++
	s.mu.Unlock()
	s.loads.Forget(userID)
}

func clone(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	return out
}
