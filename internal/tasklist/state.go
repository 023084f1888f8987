package tasklist

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/s1natex/todo-list-GO/internal/tasks"
)

// API is the subset of the tasks service the client cache needs.
type API interface {
	List(ctx context.Context) ([]tasks.Task, error)
	Create(ctx context.Context, title string) (tasks.Task, error)
	Delete(ctx context.Context, id int64) error
}

// State is a client-side cache of the task list plus the text typed into
// the new-task field. Completion lives only here; the service never
// learns about it.
//
// Failed calls are logged and leave the cache untouched. The error is
// still returned so callers can decide whether to surface it.
type State struct {
	mu     sync.Mutex
	api    API
	logger *slog.Logger
	now    func() time.Time

	tasks []tasks.Task
	input string
}

func NewState(api API, logger *slog.Logger) *State {
	return &State{
		api:    api,
		logger: logger,
		now:    time.Now,
		tasks:  make([]tasks.Task, 0),
	}
}

// Load replaces the cache with the service's current list. The result is
// deliberately left in service order, not sorted.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.api.List(ctx)
	if err != nil {
		s.logger.Error("tasklist_load_failed", slog.String("error", err.Error()))
		return err
	}
	if list == nil {
		list = make([]tasks.Task, 0)
	}
	s.tasks = list
	return nil
}

func (s *State) SetInput(v string) {
	s.mu.Lock()
	s.input = v
	s.mu.Unlock()
}

func (s *State) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Add creates a task from the pending input. Blank input is ignored.
// The input is cleared only after the service accepts it.
func (s *State) Add(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.input) == "" {
		return nil
	}

	t, err := s.api.Create(ctx, s.input)
	if err != nil {
		s.logger.Error("tasklist_add_failed", slog.String("error", err.Error()))
		return err
	}

	s.tasks = append(s.tasks, t)
	Sort(s.tasks)
	s.input = ""
	return nil
}

func (s *State) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.api.Delete(ctx, id); err != nil {
		s.logger.Error("tasklist_delete_failed", slog.Int64("id", id), slog.String("error", err.Error()))
		return err
	}

	s.tasks = slices.DeleteFunc(s.tasks, func(t tasks.Task) bool { return t.ID == id })
	Sort(s.tasks)
	return nil
}

// MarkComplete stamps the matching task as completed now and re-sorts.
// It reports whether any task matched.
func (s *State) MarkComplete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			at := s.now().UTC()
			s.tasks[i].Completed = true
			s.tasks[i].CompletedAt = &at
			found = true
		}
	}
	Sort(s.tasks)
	return found
}

// Tasks returns a copy of the cached list in display order.
func (s *State) Tasks() []tasks.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}
