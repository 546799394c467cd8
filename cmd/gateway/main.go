package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/provanota/provanota-backend/internal/api/http"
	"github.com/provanota/provanota-backend/internal/attempt"
	"github.com/provanota/provanota-backend/internal/audit"
	auth "github.com/provanota/provanota-backend/internal/auth/middleware"
	"github.com/provanota/provanota-backend/internal/config"
	"github.com/provanota/provanota-backend/internal/db"
	"github.com/provanota/provanota-backend/internal/exam"
	"github.com/provanota/provanota-backend/internal/logger"
	"github.com/provanota/provanota-backend/internal/media"
	"github.com/provanota/provanota-backend/internal/question"
	"github.com/provanota/provanota-backend/internal/rbac"
	"github.com/provanota/provanota-backend/internal/simulation"
	"github.com/provanota/provanota-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", "err", err)
	}

	// --- Stores & services ---
	bank := question.NewBank(question.NewSQLStore(dbh), log)
	examStore := exam.NewSQLStore(dbh)
	exams := exam.NewService(examStore, bank, log)
	simStore := simulation.NewSQLStore(dbh)
	builder := simulation.NewBuilder(simStore, bank, log)
	attempts := attempt.NewService(attempt.NewSQLStore(dbh), bank, examStore, simStore, log)
	users := user.NewService(user.NewSQLStore(dbh), cfg.IsAdminEmail, log)
	trail := audit.NewLog(dbh)

	mediaStore, err := media.NewFSStore(cfg.MediaDir)
	if err != nil {
		log.Fatal("media store init failed", "err", err)
	}

	authSvc := auth.NewAuthService(cfg.JWTSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/auth/register", api.RegisterHandler(users, authSvc))
		ar.Post("/auth/login", api.LoginHandler(users, authSvc))

		// Protected API (JWT -> principal in context -> RBAC)
		ar.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(authSvc))

			pr.Get("/auth/me", api.MeHandler(users))
			pr.With(rbac.Require("user:subscription")).
				Put("/users/subscription", api.UpgradeSubscriptionHandler(users))

			// Admin curation
			pr.Route("/admin", func(adm chi.Router) {
				adm.With(rbac.Require("exam:manage")).Post("/exams", api.CreateExamHandler(exams))
				adm.With(rbac.Require("exam:manage")).Get("/exams", api.ListExamsAdminHandler(exams))
				adm.With(rbac.Require("exam:manage")).Get("/exams/{examID}", api.GetExamAdminHandler(exams))
				adm.With(rbac.Require("exam:manage")).Put("/exams/{examID}", api.UpdateExamHandler(exams))
				adm.With(rbac.Require("exam:manage")).Delete("/exams/{examID}", api.DeleteExamHandler(exams))
				adm.With(rbac.Require("exam:manage")).Post("/exams/{examID}/publish", api.SetExamPublishedHandler(exams, true))
				adm.With(rbac.Require("exam:manage")).Post("/exams/{examID}/unpublish", api.SetExamPublishedHandler(exams, false))

				adm.With(rbac.Require("question:manage")).Post("/questions", api.CreateQuestionHandler(bank))
				adm.With(rbac.Require("question:manage")).Get("/exams/{examID}/questions", api.ListExamQuestionsAdminHandler(bank))
				adm.With(rbac.Require("question:manage")).Put("/questions/{questionID}", api.UpdateQuestionHandler(bank))
				adm.With(rbac.Require("question:manage")).Delete("/questions/{questionID}", api.DeleteQuestionHandler(bank))
				adm.With(rbac.Require("question:manage")).Post("/questions/{questionID}/image", api.UploadQuestionImageHandler(bank, mediaStore))
				adm.With(rbac.Require("question:import")).Post("/import/questions", api.ImportQuestionsHandler(bank, trail))
				adm.With(rbac.Require("audit:view")).Get("/audit", api.AuditLogHandler(trail))
			})

			// Student exam flow
			pr.With(rbac.Require("exam:view")).Get("/exams", api.ListExamsHandler(exams))
			pr.With(rbac.Require("exam:view")).Get("/exams/{examID}", api.GetExamHandler(exams))
			pr.With(rbac.Require("exam:view")).Get("/exams/{examID}/questions", api.ListExamQuestionsHandler(exams, bank))

			// Simulations
			pr.With(rbac.Require("simulation:create")).Post("/simulations/generate", api.GenerateSimulationHandler(builder))
			pr.With(rbac.Require("simulation:view-own")).Get("/simulations/my", api.ListMySimulationsHandler(builder))
			pr.With(rbac.Require("simulation:view-own")).Get("/simulations/{simulationID}", api.GetSimulationHandler(builder))
			pr.With(rbac.Require("simulation:view-own")).Get("/simulations/{simulationID}/questions", api.ListSimulationQuestionsHandler(builder))
			pr.With(rbac.Require("attempt:create")).Post("/simulations/{simulationID}/attempt", api.CreateSimulationAttemptHandler(attempts))

			// Attempts
			pr.With(rbac.Require("attempt:create")).Post("/attempts", api.CreateAttemptHandler(attempts))
			pr.With(rbac.Require("attempt:view-own")).Get("/attempts", api.ListAttemptsHandler(attempts))
			pr.With(rbac.Require("attempt:view-own")).Get("/attempts/{attemptID}", api.GetAttemptHandler(attempts))
			pr.With(rbac.Require("attempt:save")).Post("/attempts/{attemptID}/answer", api.SaveAnswerHandler(attempts))
			pr.With(rbac.Require("attempt:submit")).Post("/attempts/{attemptID}/submit", api.SubmitAttemptHandler(attempts, trail))
			pr.With(rbac.Require("attempt:view-own")).Get("/attempts/{attemptID}/review", api.ReviewAttemptHandler(attempts))

			// Metadata & stats
			pr.With(rbac.Require("metadata:view")).Get("/metadata/subjects", api.SubjectsHandler())
			pr.With(rbac.Require("metadata:view")).Get("/metadata/topics/{subject}", api.TopicsHandler())
			pr.With(rbac.Require("metadata:view")).Get("/metadata/filters", api.FilterOptionsHandler(bank))
			pr.With(rbac.Require("metadata:view")).Get("/metadata/question-count", api.QuestionCountHandler(bank))
			pr.With(rbac.Require("stats:view-own")).Get("/stats/dashboard", api.DashboardHandler(attempts))

			// Uploaded question images
			pr.With(rbac.Require("media:view")).Get("/media/*", api.ServeMediaHandler(mediaStore))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("listening", "addr", cfg.HTTPAddr, "db", cfg.DBDriver)
	log.Fatal("server stopped", "err", http.ListenAndServe(cfg.HTTPAddr, r))
}
