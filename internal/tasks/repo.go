package tasks

import (
	"context"
	"slices"
	"sync"
)

// Repository is the task store. Titles are stored as given; no validation
// happens at this layer.
type Repository interface {
	Create(ctx context.Context, title string) (Task, error)
	List(ctx context.Context) ([]Task, error)
	// Delete reports whether a task was removed. A missing id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}

// InMemoryRepo keeps tasks in insertion order behind a mutex.
type InMemoryRepo struct {
	mu    sync.RWMutex
	ids   *IDGenerator
	store []Task
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		ids:   NewIDGenerator(),
		store: make([]Task, 0),
	}
}

func (r *InMemoryRepo) Create(_ context.Context, title string) (Task, error) {
	t := Task{
		ID:    r.ids.Next(),
		Title: title,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store = append(r.store, t)
	return t, nil
}

func (r *InMemoryRepo) List(_ context.Context) ([]Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Task, len(r.store))
	copy(out, r.store)
	return out, nil
}

func (r *InMemoryRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.store)
	r.store = slices.DeleteFunc(r.store, func(t Task) bool { return t.ID == id })
	return len(r.store) != before, nil
}
