package settlement

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tailongswayam2000/trip-planner-backend/internal/middleware"
	"github.com/tailongswayam2000/trip-planner-backend/internal/service"
)

type Handler struct {
	svc *service.SettlementService
}

func NewHandler(svc *service.SettlementService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/trip/{tripID}", h.settle)
}

// settle recomputes the trip's settlement from its current participants,
// families, and expenses.
func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	if !middleware.RequireTripMatch(w, r, tripID) {
		return
	}

	result, err := h.svc.SettleTrip(r.Context(), tripID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
