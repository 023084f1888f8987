package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/s1natex/todo-list-GO/internal/config"
	"github.com/s1natex/todo-list-GO/internal/logging"
	"github.com/s1natex/todo-list-GO/internal/tasklist"
	"github.com/s1natex/todo-list-GO/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("web_error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWeb()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	api, err := tasklist.NewClient(cfg.APIURL, nil)
	if err != nil {
		return err
	}
	front, err := web.NewServer(api, logger, cfg.MaxSessions)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.Addr, Handler: front.Routes()}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web_listen", slog.String("addr", cfg.Addr), slog.String("api", cfg.APIURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("web_shutdown")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
