package store

import (
	"context"
	"sync"

	"praxis/internal/subscribe/models"
)

// InMemory keeps the submission log in memory for tests and deployments that
// run without a database.
type InMemory struct {
	mu          sync.RWMutex
	submissions []*models.Submission
}

// NewInMemory constructs an empty in-memory submission log.
func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Create(_ context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sub
	s.submissions = append(s.submissions, &cp)
	return nil
}

func (s *InMemory) Recent(_ context.Context, limit int) ([]*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.submissions)
	if limit > n {
		limit = n
	}
	out := make([]*models.Submission, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		cp := *s.submissions[i]
		out = append(out, &cp)
	}
	return out, nil
}
