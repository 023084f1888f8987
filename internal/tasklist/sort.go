package tasklist

import (
	"slices"

	"github.com/s1natex/todo-list-GO/internal/tasks"
)

// Compare orders incomplete tasks before completed ones, and completed
// tasks by ascending completion time. Tasks that cannot be told apart
// compare equal.
func Compare(a, b tasks.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if a.CompletedAt != nil && b.CompletedAt != nil {
		return a.CompletedAt.Compare(*b.CompletedAt)
	}
	return 0
}

// Sort orders list in place by Compare. Equal tasks keep their relative order.
func Sort(list []tasks.Task) {
	slices.SortStableFunc(list, Compare)
}
