package tasks

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type createTaskRequest struct {
	Title string `json:"title"`
}

type errResponse struct {
	Error string `json:"error"`
}

func RegisterRoutes(r chi.Router, repo Repository, logger *slog.Logger) {
	r.Get("/tasks", listTasks(repo, logger))
	r.Post("/tasks", createTask(repo, logger))
	r.Delete("/tasks/{id}", deleteTask(repo, logger))
}

func listTasks(repo Repository, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := repo.List(r.Context())
		if err != nil {
			logger.Error("task_list_failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
			return
		}
		writeJSON(w, http.StatusOK, tasks)
	}
}

// createTask accepts any title, including an empty or missing one. An
// empty body counts as {}; only malformed JSON is rejected.
func createTask(repo Repository, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_json"})
			return
		}

		t, err := repo.Create(r.Context(), req.Title)
		if err != nil {
			logger.Error("task_create_failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
			return
		}

		logger.Debug("task_created", slog.Int64("id", t.ID))
		writeJSON(w, http.StatusCreated, t)
	}
}

// deleteTask always answers with the success message; an id that is
// unknown or not an integer simply matches nothing.
func deleteTask(repo Repository, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err == nil {
			removed, err := repo.Delete(r.Context(), id)
			if err != nil {
				logger.Error("task_delete_failed", slog.Int64("id", id), slog.String("error", err.Error()))
				writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
				return
			}
			logger.Debug("task_deleted", slog.Int64("id", id), slog.Bool("removed", removed))
		}

		writeJSON(w, http.StatusOK, DeleteResponse{Message: DeletedMessage})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
