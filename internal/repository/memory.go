package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alexanderramin/gantry/internal/domain"
)

// memoryStore backs the in-memory repos. Both repos share one store so that
// deleting a project drops its tasks, as the SQLite schema does.
type memoryStore struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
	tasks    map[string]domain.Task
}

// MemoryProjectRepo implements ProjectRepo without a database. It is used for
// previewing import files and in tests.
type MemoryProjectRepo struct {
	store *memoryStore
}

// MemoryTaskRepo implements TaskRepo over the same store as its
// MemoryProjectRepo.
type MemoryTaskRepo struct {
	store *memoryStore
}

// NewMemoryRepos returns an empty project and task repo pair.
func NewMemoryRepos() (*MemoryProjectRepo, *MemoryTaskRepo) {
	s := &memoryStore{
		projects: make(map[string]domain.Project),
		tasks:    make(map[string]domain.Task),
	}
	return &MemoryProjectRepo{store: s}, &MemoryTaskRepo{store: s}
}

func (r *MemoryProjectRepo) Create(_ context.Context, p *domain.Project) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[p.ID]; ok {
		return fmt.Errorf("inserting project: duplicate id %q", p.ID)
	}
	if p.ShortID != "" {
		for _, existing := range s.projects {
			if strings.EqualFold(existing.ShortID, p.ShortID) {
				return fmt.Errorf("inserting project: duplicate short id %q", p.ShortID)
			}
		}
	}
	s.projects[p.ID] = *p
	return nil
}

func (r *MemoryProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (r *MemoryProjectRepo) GetByShortID(_ context.Context, shortID string) (*domain.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ShortID != "" && strings.EqualFold(p.ShortID, shortID) {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", shortID, ErrNotFound)
}

func (r *MemoryProjectRepo) List(_ context.Context) ([]*domain.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *MemoryProjectRepo) Update(_ context.Context, p *domain.Project) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[p.ID]; !ok {
		return fmt.Errorf("project %q: %w", p.ID, ErrNotFound)
	}
	s.projects[p.ID] = *p
	return nil
}

func (r *MemoryProjectRepo) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	delete(s.projects, id)
	for tid, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, tid)
		}
	}
	return nil
}

func (r *MemoryTaskRepo) Create(_ context.Context, t *domain.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[t.ProjectID]; !ok {
		return fmt.Errorf("inserting task: project %q: %w", t.ProjectID, ErrNotFound)
	}
	if _, ok := s.tasks[t.ID]; ok {
		return fmt.Errorf("inserting task: duplicate id %q", t.ID)
	}
	s.tasks[t.ID] = *t
	return nil
}

func (r *MemoryTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	return &t, nil
}

func (r *MemoryTaskRepo) ListByProject(_ context.Context, projectID string) ([]*domain.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.OrderIndex != b.OrderIndex {
			return a.OrderIndex < b.OrderIndex
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *MemoryTaskRepo) Update(_ context.Context, t *domain.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return fmt.Errorf("task %q: %w", t.ID, ErrNotFound)
	}
	s.tasks[t.ID] = *t
	return nil
}

func (r *MemoryTaskRepo) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	delete(s.tasks, id)
	return nil
}

var (
	_ ProjectRepo = (*MemoryProjectRepo)(nil)
	_ TaskRepo    = (*MemoryTaskRepo)(nil)
	_ ProjectRepo = (*SQLiteProjectRepo)(nil)
	_ TaskRepo    = (*SQLiteTaskRepo)(nil)
)
