package tasks

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	tasksCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tasks_created_total",
		Help: "Total number of tasks created",
	})

	tasksDeletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasks_deleted_total",
			Help: "Total number of delete calls, by whether a task was removed",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(tasksCreatedTotal, tasksDeletedTotal)
}

type instrumentedRepo struct {
	next Repository
}

// Instrument wraps repo so creates and deletes are counted.
func Instrument(repo Repository) Repository {
	return &instrumentedRepo{next: repo}
}

func (r *instrumentedRepo) Create(ctx context.Context, title string) (Task, error) {
	t, err := r.next.Create(ctx, title)
	if err == nil {
		tasksCreatedTotal.Inc()
	}
	return t, err
}

func (r *instrumentedRepo) List(ctx context.Context) ([]Task, error) {
	return r.next.List(ctx)
}

func (r *instrumentedRepo) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := r.next.Delete(ctx, id)
	if err != nil {
		return removed, err
	}
	result := "noop"
	if removed {
		result = "removed"
	}
	tasksDeletedTotal.WithLabelValues(result).Inc()
	return removed, nil
}
