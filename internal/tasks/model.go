package tasks

import "time"

// Task is the wire and storage shape of a single to-do item.
// Completed and CompletedAt are only ever set by clients; the service
// stores and returns them as received at creation (unset).
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// DeleteResponse is returned by DELETE /tasks/{id} regardless of match.
type DeleteResponse struct {
	Message string `json:"message"`
}

const DeletedMessage = "Task deleted successfully"
