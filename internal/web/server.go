// Package web serves the task list page. Each browser session owns a
// tasklist.State; loading "/" mounts a fresh one, so client-only
// completion disappears on reload.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/s1natex/todo-list-GO/internal/middleware"
	"github.com/s1natex/todo-list-GO/internal/tasklist"
	"github.com/s1natex/todo-list-GO/internal/tasks"
)

const sessionCookie = "tasklist_session"

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	api      tasklist.API
	logger   *slog.Logger
	sessions *sessionStore
	tmpl     *template.Template
}

func NewServer(api tasklist.API, logger *slog.Logger, maxSessions int) (*Server, error) {
	tmpl, err := template.New("index.html").
		Funcs(template.FuncMap{"ago": func(t *time.Time) string { return humanize.Time(*t) }}).
		ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		api:      api,
		logger:   logger,
		sessions: newSessionStore(maxSessions),
		tmpl:     tmpl,
	}, nil
}

// Routes wires the page, the form actions and the ambient endpoints.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.RequestLogger(s.logger))

	r.Get("/", s.mount)
	r.Get("/view", s.view)
	r.Post("/add", s.withState(s.add))
	r.Post("/tasks/{id}/delete", s.withState(s.delete))
	r.Post("/tasks/{id}/complete", s.withState(s.complete))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())
	return r
}

type pageData struct {
	Tasks []tasks.Task
	Input string
}

func (s *Server) mount(w http.ResponseWriter, r *http.Request) {
	st := tasklist.NewState(s.api, s.logger)
	// a failed load still renders an empty list
	_ = st.Load(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.sessions.add(st),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.render(w, st)
}

// view renders the cache once after a form action. Any other visit,
// including a browser reload, remounts from the service at "/".
func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r)
	if !ok || !sess.pending.CompareAndSwap(true, false) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, sess.state)
}

func (s *Server) add(w http.ResponseWriter, r *http.Request, st *tasklist.State) {
	st.SetInput(r.PostFormValue("title"))
	_ = st.Add(r.Context())
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request, st *tasklist.State) {
	if id, ok := taskID(r); ok {
		_ = st.Delete(r.Context(), id)
	}
}

func (s *Server) complete(w http.ResponseWriter, r *http.Request, st *tasklist.State) {
	if id, ok := taskID(r); ok {
		st.MarkComplete(id)
	}
}

// withState resolves the session, runs the action and redirects to a
// one-shot view. Without a session the user is sent to mount a new one.
func (s *Server) withState(action func(http.ResponseWriter, *http.Request, *tasklist.State)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(r)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		action(w, r, sess.state)
		sess.pending.Store(true)
		http.Redirect(w, r, "/view", http.StatusSeeOther)
	}
}

func (s *Server) session(r *http.Request) (*session, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return s.sessions.get(c.Value)
}

func (s *Server) render(w http.ResponseWriter, st *tasklist.State) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	data := pageData{Tasks: st.Tasks(), Input: st.Input()}
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render_failed", slog.String("error", err.Error()))
	}
}

func taskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
