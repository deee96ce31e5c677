package trip

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tailongswayam2000/trip-planner-backend/internal/auth"
	"github.com/tailongswayam2000/trip-planner-backend/internal/middleware"
	"github.com/tailongswayam2000/trip-planner-backend/internal/service"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

type Handler struct {
	svc    *service.TripService
	store  storage.Store
	authmw func(http.Handler) http.Handler
}

func NewHandler(svc *service.TripService, store storage.Store, authmw func(http.Handler) http.Handler) *Handler {
	return &Handler{svc: svc, store: store, authmw: authmw}
}

// Routes mounts the trip endpoints. Creating, listing, and joining trips
// are open; mutating a trip requires a trip token.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/join", h.join)
	r.Post("/{id}/recover", h.recover)

	r.Group(func(r chi.Router) {
		r.Use(h.authmw)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

type createTripRequest struct {
	Name             string  `json:"name"`
	Destination      string  `json:"destination"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	Budget           float64 `json:"budget"`
	Currency         string  `json:"currency"`
	AccessCode       string  `json:"accessCode"`
	RecoveryQuestion string  `json:"recoveryQuestion"`
	RecoveryAnswer   string  `json:"recoveryAnswer"`
	SecurityQuestion string  `json:"securityQuestion"`
	SecurityAnswer   string  `json:"securityAnswer"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	trip, err := h.svc.CreateTrip(r.Context(), service.CreateTripParams{
		Name:             req.Name,
		Destination:      req.Destination,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Budget:           req.Budget,
		Currency:         req.Currency,
		AccessCode:       req.AccessCode,
		RecoveryQuestion: req.RecoveryQuestion,
		RecoveryAnswer:   req.RecoveryAnswer,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
	})
	if err != nil {
		if errors.Is(err, auth.ErrWeakAccessCode) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(trip)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	trips, err := h.store.ListTrips(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(trips)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.store.GetTrip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "trip not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(trip)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type joinTripRequest struct {
	AccessCode     string `json:"accessCode"`
	SecurityAnswer string `json:"securityAnswer"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	var req joinTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.svc.JoinTrip(r.Context(), chi.URLParam(r, "id"), req.AccessCode, req.SecurityAnswer)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(tokenResponse{Token: token}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type recoverTripRequest struct {
	RecoveryAnswer string `json:"recoveryAnswer"`
}

func (h *Handler) recover(w http.ResponseWriter, r *http.Request) {
	var req recoverTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.svc.RecoverAccess(r.Context(), chi.URLParam(r, "id"), req.RecoveryAnswer)
	if err != nil {
		if errors.Is(err, service.ErrRecoveryNotSet) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeAuthError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(tokenResponse{Token: token}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTripRequest struct {
	Name        *string  `json:"name,omitempty"`
	Destination *string  `json:"destination,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !middleware.RequireTripMatch(w, r, id) {
		return
	}

	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	trip, err := h.store.GetTrip(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "trip not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		trip.Name = *req.Name
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if req.Budget != nil {
		trip.Budget = *req.Budget
	}
	if req.Currency != nil {
		trip.Currency = *req.Currency
	}
	if req.Status != nil {
		trip.Status = *req.Status
	}

	if err := h.store.UpdateTrip(r.Context(), trip); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(trip)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !middleware.RequireTripMatch(w, r, id) {
		return
	}

	if err := h.store.DeleteTrip(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "trip not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, auth.ErrInvalidAccessCode) || errors.Is(err, auth.ErrWrongAnswer) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}
