package itinerary

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
	r.Get("/trip/{tripID}", h.listByTrip)
	r.Post("/", h.createDay)
	r.Put("/{id}", h.updateDay)
	r.Delete("/{id}", h.deleteDay)
	r.Post("/{id}/places", h.addPlace)
	r.Put("/{id}/places/{entryID}", h.updatePlace)
	r.Put("/{id}/reorder", h.reorder)
	r.Delete("/{id}/places/{entryID}", h.removePlace)
}

type entryResponse struct {
	ID               string `json:"id"`
	PlaceID          string `json:"placeId"`
	StartTime        string `json:"startTime,omitempty"`
	EndTime          string `json:"endTime,omitempty"`
	OrderIndex       int    `json:"orderIndex"`
	TravelTimeToNext string `json:"travelTimeToNext,omitempty"`
}

type dayPlanResponse struct {
	ID     string          `json:"id"`
	TripID string          `json:"tripId"`
	Date   string          `json:"date"`
	Places []entryResponse `json:"places"`
}

func toResponse(plan *models.DayPlan) dayPlanResponse {
	resp := dayPlanResponse{
		ID:     plan.ID,
		TripID: plan.TripID,
		Date:   plan.Date,
		Places: make([]entryResponse, len(plan.Places)),
	}
	for i, e := range plan.Places {
		resp.Places[i] = entryResponse{
			ID:               e.ID,
			PlaceID:          e.PlaceID,
			StartTime:        e.StartTime,
			EndTime:          e.EndTime,
			OrderIndex:       e.OrderIndex,
			TravelTimeToNext: e.TravelTimeToNext,
		}
	}

	return resp
}

func (h *Handler) listByTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	if !middleware.RequireTripMatch(w, r, tripID) {
		return
	}

	plans, err := h.store.ListDayPlansByTrip(r.Context(), tripID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]dayPlanResponse, len(plans))
	for i, plan := range plans {
		resp[i] = toResponse(plan)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createDayRequest struct {
	TripID string `json:"tripId"`
	Date   string `json:"date"`
}

func (h *Handler) createDay(w http.ResponseWriter, r *http.Request) {
	var req createDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.TripID == "" || req.Date == "" {
		http.Error(w, "tripId and date are required", http.StatusBadRequest)
		return
	}
	if !middleware.RequireTripMatch(w, r, req.TripID) {
		return
	}

	plan := &models.DayPlan{TripID: req.TripID, Date: req.Date}

	if err := h.store.CreateDayPlan(r.Context(), plan); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(plan)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateDayRequest struct {
	Date string `json:"date"`
}

func (h *Handler) updateDay(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.planForRequest(w, r)
	if !ok {
		return
	}

	var req updateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	plan.Date = req.Date

	if err := h.store.UpdateDayPlan(r.Context(), plan); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(plan)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteDay(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.planForRequest(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteDayPlan(r.Context(), plan.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addPlaceRequest struct {
	PlaceID          string `json:"placeId"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	OrderIndex       int    `json:"orderIndex"`
	TravelTimeToNext string `json:"travelTimeToNext"`
}

func (h *Handler) addPlace(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.planForRequest(w, r)
	if !ok {
		return
	}

	var req addPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PlaceID == "" {
		http.Error(w, "placeId is required", http.StatusBadRequest)
		return
	}

	entry := &models.DayPlanPlace{
		DayPlanID:        plan.ID,
		PlaceID:          req.PlaceID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		OrderIndex:       req.OrderIndex,
		TravelTimeToNext: req.TravelTimeToNext,
	}

	if err := h.store.AddDayPlanPlace(r.Context(), entry); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(entryResponse{
		ID:               entry.ID,
		PlaceID:          entry.PlaceID,
		StartTime:        entry.StartTime,
		EndTime:          entry.EndTime,
		OrderIndex:       entry.OrderIndex,
		TravelTimeToNext: entry.TravelTimeToNext,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) updatePlace(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.planForRequest(w, r)
	if !ok {
		return
	}

	var req addPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PlaceID == "" {
		http.Error(w, "placeId is required", http.StatusBadRequest)
		return
	}

	entry := &models.DayPlanPlace{
		ID:               chi.URLParam(r, "entryID"),
		DayPlanID:        plan.ID,
		PlaceID:          req.PlaceID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		OrderIndex:       req.OrderIndex,
		TravelTimeToNext: req.TravelTimeToNext,
	}

	if err := h.store.UpdateDayPlanPlace(r.Context(), entry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "itinerary entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(entryResponse{
		ID:               entry.ID,
		PlaceID:          entry.PlaceID,
		StartTime:        entry.StartTime,
		EndTime:          entry.EndTime,
		OrderIndex:       entry.OrderIndex,
		TravelTimeToNext: entry.TravelTimeToNext,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type reorderRequest struct {
	Order []struct {
		ID         string `json:"id"`
		OrderIndex int    `json:"orderIndex"`
	} `json:"order"`
}

// reorder rewrites the order indexes of a day's entries in one shot.
func (h *Handler) reorder(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.planForRequest(w, r)
	if !ok {
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Order) == 0 {
		http.Error(w, "order is required", http.StatusBadRequest)
		return
	}

	orders := make(map[string]int, len(req.Order))
	for _, o := range req.Order {
		orders[o.ID] = o.OrderIndex
	}

	if err := h.store.ReorderDayPlanPlaces(r.Context(), plan.ID, orders); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removePlace(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.planForRequest(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteDayPlanPlace(r.Context(), plan.ID, chi.URLParam(r, "entryID")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "itinerary entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// planForRequest loads the day plan from the id route param and checks it
// against the token's trip.
func (h *Handler) planForRequest(w http.ResponseWriter, r *http.Request) (*models.DayPlan, bool) {
	plan, err := h.store.GetDayPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "day plan not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}
	if !middleware.RequireTripMatch(w, r, plan.TripID) {
		return nil, false
	}

	return plan, true
}
