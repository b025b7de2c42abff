package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/qa-forum/internal/auth"
	"github.com/crucial707/qa-forum/internal/config"
	"github.com/crucial707/qa-forum/internal/handlers"
	"github.com/crucial707/qa-forum/internal/middleware"
	"github.com/crucial707/qa-forum/internal/repo"
)

// newRouter wires repositories, handlers and middleware into the API router.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	categoryRepo := repo.NewCategoryRepo(db)
	questionRepo := repo.NewQuestionRepo(db)
	answerRepo := repo.NewAnswerRepo(db)

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTExpiresIn, cfg.JWTIssuer)

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Tokens: tokens}
	categoryHandler := &handlers.CategoryHandler{Repo: categoryRepo}
	questionHandler := &handlers.QuestionHandler{
		Questions:  questionRepo,
		Categories: categoryRepo,
		Answers:    answerRepo,
	}
	answerHandler := &handlers.AnswerHandler{Answers: answerRepo, Questions: questionRepo}
	healthHandler := &handlers.HealthHandler{DB: db}

	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)
	requireUser := middleware.Authenticate(tokens, userRepo)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(middleware.CSPAPI, cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Get("/categories", categoryHandler.ListCategories)

		r.Get("/questions/category/{categoryId}", questionHandler.ListByCategory)
		r.Get("/questions/{id}", questionHandler.GetQuestion)
		r.With(requireUser).Post("/questions", questionHandler.CreateQuestion)

		r.With(requireUser).Post("/answers", answerHandler.CreateAnswer)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}
