package tasklist

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s1natex/todo-list-GO/internal/tasks"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	tasks.RegisterRoutes(r, tasks.NewInMemoryRepo(), slog.New(slog.NewJSONHandler(io.Discard, nil)))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRoundTrip(t *testing.T) {
	srv := newAPIServer(t)
	c, err := NewClient(srv.URL+"/", srv.Client())
	require.NoError(t, err)
	ctx := t.Context()

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := c.Create(ctx, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.NotZero(t, created.ID)

	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []tasks.Task{created}, list)

	require.NoError(t, c.Delete(ctx, created.ID))
	require.NoError(t, c.Delete(ctx, created.ID), "deleting twice still succeeds")

	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, nil)
	require.NoError(t, err)

	_, err = c.List(t.Context())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "nope", se.Body)
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := NewClient("localhost:2222", nil)
	require.Error(t, err)
}

func TestStateAgainstService(t *testing.T) {
	srv := newAPIServer(t)
	c, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	s := NewState(c, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, s.Load(t.Context()))

	for _, title := range []string{"a", "b", "c"} {
		s.SetInput(title)
		require.NoError(t, s.Add(t.Context()))
	}
	first := s.Tasks()[0]
	require.True(t, s.MarkComplete(first.ID))

	// a fresh mount reloads from the service and forgets completion
	fresh := NewState(c, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, fresh.Load(t.Context()))
	for _, task := range fresh.Tasks() {
		assert.False(t, task.Completed)
		assert.Nil(t, task.CompletedAt)
	}
	assert.Equal(t, first.ID, fresh.Tasks()[0].ID)
}
