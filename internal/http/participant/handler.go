package participant

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
	r.Get("/trip/{tripID}/settling", h.listSettling)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type participantResponse struct {
	ID       string `json:"id"`
	TripID   string `json:"tripId"`
	Name     string `json:"name"`
	FamilyID string `json:"familyId,omitempty"`
	IsHead   bool   `json:"isHead"`
}

func toResponse(p *models.Participant) participantResponse {
	return participantResponse{
		ID:       p.ID,
		TripID:   p.TripID,
		Name:     p.Name,
		FamilyID: p.FamilyID,
		IsHead:   p.IsHead,
	}
}

func toResponseList(participants []*models.Participant) []participantResponse {
	resp := make([]participantResponse, len(participants))
	for i, p := range participants {
		resp[i] = toResponse(p)
	}

	return resp
}

func (h *Handler) listByTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	if !middleware.RequireTripMatch(w, r, tripID) {
		return
	}

	participants, err := h.store.ListParticipantsByTrip(r.Context(), tripID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(participants)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// listSettling returns only the participants that settle for themselves:
// family heads and independents.
func (h *Handler) listSettling(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	if !middleware.RequireTripMatch(w, r, tripID) {
		return
	}

	participants, err := h.store.ListSettlingParticipants(r.Context(), tripID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(participants)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createParticipantRequest struct {
	TripID   string `json:"tripId"`
	Name     string `json:"name"`
	FamilyID string `json:"familyId"`
	IsHead   *bool  `json:"isHead"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createParticipantRequest
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

	p := &models.Participant{
		TripID:   req.TripID,
		Name:     req.Name,
		FamilyID: req.FamilyID,
		IsHead:   normalizeIsHead(req.FamilyID, req.IsHead),
	}

	if err := h.store.CreateParticipant(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateParticipantRequest struct {
	Name     *string `json:"name,omitempty"`
	FamilyID *string `json:"familyId,omitempty"`
	IsHead   *bool   `json:"isHead,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetParticipant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "participant not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	if !middleware.RequireTripMatch(w, r, p.TripID) {
		return
	}

	var req updateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.FamilyID != nil {
		p.FamilyID = *req.FamilyID
	}
	if req.IsHead != nil || req.FamilyID != nil {
		p.IsHead = normalizeIsHead(p.FamilyID, req.IsHead)
	}

	if err := h.store.UpdateParticipant(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetParticipant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "participant not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	if !middleware.RequireTripMatch(w, r, p.TripID) {
		return
	}

	if err := h.store.DeleteParticipant(r.Context(), p.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// normalizeIsHead keeps the head flag consistent with family membership:
// a participant without a family always settles for themselves.
func normalizeIsHead(familyID string, isHead *bool) bool {
	if familyID == "" {
		return true
	}
	if isHead == nil {
		return false
	}
	return *isHead
}
