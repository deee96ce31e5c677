package family

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
	r.Post("/", h.create)
	r.Post("/{id}/members", h.addMember)
	r.Delete("/{id}", h.delete)
}

type memberResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHead bool   `json:"isHead"`
}

type familyResponse struct {
	ID      string           `json:"id"`
	TripID  string           `json:"tripId"`
	Name    string           `json:"name"`
	HeadID  string           `json:"headId"`
	Members []memberResponse `json:"members"`
}

func (h *Handler) toResponse(r *http.Request, f *models.Family) (familyResponse, error) {
	members, err := h.store.ListFamilyMembers(r.Context(), f.ID)
	if err != nil {
		return familyResponse{}, err
	}

	resp := familyResponse{
		ID:      f.ID,
		TripID:  f.TripID,
		Name:    f.Name,
		HeadID:  f.HeadID,
		Members: make([]memberResponse, len(members)),
	}
	for i, m := range members {
		resp.Members[i] = memberResponse{ID: m.ID, Name: m.Name, IsHead: m.IsHead}
	}

	return resp, nil
}

func (h *Handler) listByTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	if !middleware.RequireTripMatch(w, r, tripID) {
		return
	}

	families, err := h.store.ListFamiliesByTrip(r.Context(), tripID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]familyResponse, len(families))
	for i, f := range families {
		if resp[i], err = h.toResponse(r, f); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createFamilyRequest struct {
	TripID   string `json:"tripId"`
	Name     string `json:"name"`
	HeadName string `json:"headName"`
}

// create makes a family together with its head participant. The head is
// created in the same transaction so a family never exists without one.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.TripID == "" || req.Name == "" || req.HeadName == "" {
		http.Error(w, "tripId, name and headName are required", http.StatusBadRequest)
		return
	}
	if !middleware.RequireTripMatch(w, r, req.TripID) {
		return
	}

	family := &models.Family{TripID: req.TripID, Name: req.Name}
	head := &models.Participant{TripID: req.TripID, Name: req.HeadName, IsHead: true}

	if err := h.store.CreateFamily(r.Context(), family, head); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := h.toResponse(r, family)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addMemberRequest struct {
	Name string `json:"name"`
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	family, err := h.store.GetFamily(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "family not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	if !middleware.RequireTripMatch(w, r, family.TripID) {
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	member := &models.Participant{
		TripID:   family.TripID,
		Name:     req.Name,
		FamilyID: family.ID,
		IsHead:   false,
	}

	if err := h.store.CreateParticipant(r.Context(), member); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(memberResponse{ID: member.ID, Name: member.Name, IsHead: member.IsHead}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// delete removes a family and detaches its members, which become
// independent settling participants again.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	family, err := h.store.GetFamily(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "family not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	if !middleware.RequireTripMatch(w, r, family.TripID) {
		return
	}

	if err := h.store.DeleteFamily(r.Context(), family.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
