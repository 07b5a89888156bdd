package main

import (
	"net/http"
	"time"

	"github.com/PraneethJosyula/Student-MarketPlace/config"
	"github.com/PraneethJosyula/Student-MarketPlace/handlers"
	"github.com/PraneethJosyula/Student-MarketPlace/repository"
	"github.com/PraneethJosyula/Student-MarketPlace/service"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, using environment defaults")
	}

	cfg := config.LoadConfig()

	// All marketplace state lives in this one repository and is gone when
	// the process exits.
	repo := repository.NewMemoryRepository(repository.DefaultSeed())

	svc := service.NewService(repo, cfg.JWTSecret)

	h := handlers.NewHandler(svc, cfg.JWTSecret, logger)

	r := mux.NewRouter()
	r.HandleFunc("/api/session", h.SessionHandler).Methods("POST")
	r.HandleFunc("/api/users", h.UsersHandler).Methods("GET")
	r.HandleFunc("/api/listings", h.ListingsHandler).Methods("GET")
	r.HandleFunc("/api/listings", h.SessionMiddleware(h.CreateListingHandler)).Methods("POST")
	r.HandleFunc("/api/listings/{id}/buy", h.SessionMiddleware(h.BuyHandler)).Methods("POST")
	r.HandleFunc("/api/listings/{id}", h.SessionMiddleware(h.DeleteListingHandler)).Methods("DELETE")
	r.HandleFunc("/api/dashboard", h.SessionMiddleware(h.DashboardHandler)).Methods("GET")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			logger.Error("cannot write response", zap.Error(err))
		}
	}).Methods("GET")
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("Welcome to the Student Marketplace API")); err != nil {
			logger.Error("cannot write response", zap.Error(err))
		}
	}).Methods("GET")

	srv := http.Server{
		Handler:      r,
		Addr:         ":" + cfg.ServerPort,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	logger.Info("server started", zap.String("port", cfg.ServerPort))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
