package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/obratrack/obratrack/internal/analytics"
	"github.com/obratrack/obratrack/internal/config"
	"github.com/obratrack/obratrack/internal/handler"
	"github.com/obratrack/obratrack/internal/integrations/ine"
	"github.com/obratrack/obratrack/internal/middleware"
	"github.com/obratrack/obratrack/internal/notifier"
	"github.com/obratrack/obratrack/internal/repository"
	"github.com/obratrack/obratrack/internal/service"
	"github.com/obratrack/obratrack/internal/utils/email"
	"github.com/sirupsen/logrus"
)

func main() {
	// A local .env is optional
	godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := analytics.NewEngine(cfg.BaselineMinMonths, logger)
	svc := service.NewService(repo, engine, logger, cfg)
	h := handler.NewHandler(svc)
	ineClient := ine.NewClient(cfg, logger)
	sender := email.NewSender(cfg, logger)

	// Schedule delay alerts
	alerts := notifier.NewNotifier(svc, sender, cfg, logger)
	if err := alerts.Start(); err != nil {
		logger.Fatalf("Failed to start notifier: %v", err)
	}
	defer alerts.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Cost index endpoint
	r.HandleFunc("/cost-index", func(w http.ResponseWriter, r *http.Request) {
		index, err := ineClient.GetCostIndex()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get cost index: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(index)
	}).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/projects", h.CreateProject).Methods("POST")
	authRouter.HandleFunc("/projects", h.ListProjects).Methods("GET")
	authRouter.HandleFunc("/projects/{id}", h.DeleteProject).Methods("DELETE")
	authRouter.HandleFunc("/projects/{id}/budgets", h.CreateBudget).Methods("POST")
	authRouter.HandleFunc("/budgets/{id}/lines", h.CreateBudgetLine).Methods("POST")
	authRouter.HandleFunc("/lines/{id}/expenses", h.CreateExpense).Methods("POST")
	authRouter.HandleFunc("/dashboard", h.Dashboard).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
