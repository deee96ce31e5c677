package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	tphttp "github.com/tailongswayam2000/trip-planner-backend/internal/http"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/expense"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/family"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/itinerary"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/participant"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/place"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/settlement"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/trip"

	"github.com/tailongswayam2000/trip-planner-backend/internal/auth"
	"github.com/tailongswayam2000/trip-planner-backend/internal/config"
	"github.com/tailongswayam2000/trip-planner-backend/internal/middleware"
	"github.com/tailongswayam2000/trip-planner-backend/internal/service"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage/sqlite"
	"github.com/tailongswayam2000/trip-planner-backend/pkg/logging"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DB.Path)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authmw := middleware.RequireTripAccess(jwtManager)

	tripSvc := service.NewTripService(store, jwtManager)
	settleSvc := service.NewSettlementService(store)

	router := tphttp.New(
		trip.NewHandler(tripSvc, store, authmw),
		place.NewHandler(store),
		participant.NewHandler(store),
		family.NewHandler(store),
		expense.NewHandler(store),
		settlement.NewHandler(settleSvc),
		itinerary.NewHandler(store),
		jwtManager,
		cfg.CORS.AllowedOrigins,
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("server starting", "addr", cfg.Addr())
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
