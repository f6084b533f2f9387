package store

import (
	"context"
	"sort"
	"sync"

	"github.com/statboard/statboard/pkg/report"
)

// MemoryStore keeps reports in a map. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]report.Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]report.Report)}
}

// Get retrieves a report by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return report.Report{}, errNotFound(id)
	}
	return r, nil
}

// Put upserts a report.
func (s *MemoryStore) Put(ctx context.Context, r report.Report) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.reports[r.ID]
	stamp(&r, ok, existing.CreatedAt)
	s.reports[r.ID] = r
	return nil
}

// Delete removes a report.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return errNotFound(id)
	}
	delete(s.reports, id)
	return nil
}

// List returns all reports ordered by id.
func (s *MemoryStore) List(ctx context.Context) ([]report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]report.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Close drops all reports.
func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	s.reports = make(map[string]report.Report)
	s.mu.Unlock()
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
