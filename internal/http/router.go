package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tailongswayam2000/trip-planner-backend/internal/auth"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/expense"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/family"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/itinerary"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/participant"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/place"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/settlement"
	"github.com/tailongswayam2000/trip-planner-backend/internal/http/trip"
	"github.com/tailongswayam2000/trip-planner-backend/internal/middleware"
)

// New builds the full route tree. Trip creation, listing, join, and
// recovery are open; everything else is scoped to the trip named in the
// caller's token.
func New(
	trips *trip.Handler,
	places *place.Handler,
	participants *participant.Handler,
	families *family.Handler,
	expenses *expense.Handler,
	settlements *settlement.Handler,
	dayPlans *itinerary.Handler,
	jwtManager *auth.JWTManager,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.Recoverer)
	router.Use(middleware.RequestLogger)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Route("/trips", trips.Routes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTripAccess(jwtManager))

			r.Route("/places", places.Routes)
			r.Route("/participants", participants.Routes)
			r.Route("/families", families.Routes)
			r.Route("/expenses", expenses.Routes)
			r.Route("/settlements", settlements.Routes)
			r.Route("/itinerary", dayPlans.Routes)
		})
	})

	return router
}
