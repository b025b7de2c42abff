package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/crucial707/qa-forum/internal/client"
	"github.com/crucial707/qa-forum/internal/middleware"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.LogFormat, cfg.LogLevel))

	views, err := newRenderer()
	if err != nil {
		slog.Error("load templates", "error", err)
		os.Exit(1)
	}

	a := &app{
		api:      client.New(cfg.APIURL, &http.Client{Timeout: cfg.APITimeout}),
		sessions: newCookieStore(cfg.CookieSecure, cfg.SessionTTL),
		views:    views,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(a, cfg.CookieSecure),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web UI running", "addr", "http://localhost:"+cfg.Port, "api", cfg.APIURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("web server failed", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown", "error", err)
	}
}

func newRouter(a *app, hsts bool) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(middleware.CSPWeb, hsts))
	r.Use(middleware.MaxBytes(64 << 10))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Public
	r.Get("/login", a.loginForm)
	r.Post("/login", a.loginSubmit)
	r.Get("/register", a.registerForm)
	r.Post("/register", a.registerSubmit)
	r.Post("/logout", a.logout)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(a.requireSession)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
		})
		r.Get("/dashboard", a.dashboard)
		r.Get("/questions/new", a.questionForm)
		r.Post("/questions", a.questionSubmit)
		r.Get("/questions/{id}", a.questionDetail)
		r.Post("/questions/{id}/answers", a.answerSubmit)
	})

	return r
}

func newLogger(format, lvl string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
