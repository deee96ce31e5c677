package place

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tailongswayam2000/trip-planner-backend/internal/middleware"
	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

type Handler struct {
	store storage.Store
}

func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type placeResponse struct {
	ID                string `json:"id"`
	TripID            string `json:"tripId"`
	Name              string `json:"name"`
	Category          string `json:"category,omitempty"`
	EstimatedDuration int    `json:"estimatedDuration,omitempty"`
	Address           string `json:"address,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

func toResponse(p *models.Place) placeResponse {
	return placeResponse{
		ID:                p.ID,
		TripID:            p.TripID,
		Name:              p.Name,
		Category:          p.Category,
		EstimatedDuration: p.EstimatedDuration,
		Address:           p.Address,
		Notes:             p.Notes,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tripID := r.URL.Query().Get("tripId")
	if tripID == "" {
		http.Error(w, "tripId query parameter is required", http.StatusBadRequest)
		return
	}
	if !middleware.RequireTripMatch(w, r, tripID) {
		return
	}

	places, err := h.store.ListPlacesByTrip(r.Context(), tripID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]placeResponse, len(places))
	for i, p := range places {
		resp[i] = toResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createPlaceRequest struct {
	TripID            string `json:"tripId"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	EstimatedDuration int    `json:"estimatedDuration"`
	Address           string `json:"address"`
	Notes             string `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.TripID == "" || req.Name == "" {
		http.Error(w, "tripId and name are required", http.StatusBadRequest)
		return
	}
	if !middleware.RequireTripMatch(w, r, req.TripID) {
		return
	}

	place := &models.Place{
		TripID:            req.TripID,
		Name:              req.Name,
		Category:          req.Category,
		EstimatedDuration: req.EstimatedDuration,
		Address:           req.Address,
		Notes:             req.Notes,
	}

	if err := h.store.CreatePlace(r.Context(), place); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(place)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updatePlaceRequest struct {
	Name              *string `json:"name,omitempty"`
	Category          *string `json:"category,omitempty"`
	EstimatedDuration *int    `json:"estimatedDuration,omitempty"`
	Address           *string `json:"address,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	place, err := h.store.GetPlace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "place not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	if !middleware.RequireTripMatch(w, r, place.TripID) {
		return
	}

	var req updatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		place.Name = *req.Name
	}
	if req.Category != nil {
		place.Category = *req.Category
	}
	if req.EstimatedDuration != nil {
		place.EstimatedDuration = *req.EstimatedDuration
	}
	if req.Address != nil {
		place.Address = *req.Address
	}
	if req.Notes != nil {
		place.Notes = *req.Notes
	}

	if err := h.store.UpdatePlace(r.Context(), place); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(place)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	place, err := h.store.GetPlace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "place not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	if !middleware.RequireTripMatch(w, r, place.TripID) {
		return
	}

	if err := h.store.DeletePlace(r.Context(), place.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
