package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

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

// Routes mounts the expense endpoints. Expenses are immutable: there is no
// update route, only create and delete.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Delete("/{id}", h.delete)
}

type expenseResponse struct {
	ID                string   `json:"id"`
	TripID            string   `json:"tripId"`
	Description       string   `json:"description"`
	Amount            float64  `json:"amount"`
	Currency          string   `json:"currency,omitempty"`
	PaymentTime       int64    `json:"paymentTime"`
	PaidByParticipant string   `json:"paidByParticipant,omitempty"`
	PlaceID           string   `json:"placeId,omitempty"`
	ModeOfPayment     string   `json:"modeOfPayment,omitempty"`
	IsPersonal        bool     `json:"isPersonal"`
	SplitAmong        []string `json:"splitAmong"`
}

func toResponse(e *models.Expense) expenseResponse {
	split := e.SplitAmong
	if split == nil {
		split = []string{}
	}

	return expenseResponse{
		ID:                e.ID,
		TripID:            e.TripID,
		Description:       e.Description,
		Amount:            e.Amount,
		Currency:          e.Currency,
		PaymentTime:       e.PaymentTime,
		PaidByParticipant: e.PaidByParticipant,
		PlaceID:           e.PlaceID,
		ModeOfPayment:     e.ModeOfPayment,
		IsPersonal:        e.IsPersonal,
		SplitAmong:        split,
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

	expenses, err := h.store.ListExpensesByTrip(r.Context(), tripID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	expense, err := h.store.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	if !middleware.RequireTripMatch(w, r, expense.TripID) {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(expense)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createExpenseRequest struct {
	TripID            string   `json:"tripId"`
	Description       string   `json:"description"`
	Amount            float64  `json:"amount"`
	Currency          string   `json:"currency"`
	PaymentTime       int64    `json:"paymentTime"`
	PaidByParticipant string   `json:"paidByParticipant"`
	PlaceID           string   `json:"placeId"`
	ModeOfPayment     string   `json:"modeOfPayment"`
	IsPersonal        bool     `json:"isPersonal"`
	SplitAmong        []string `json:"splitAmong"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.TripID == "" {
		http.Error(w, "tripId is required", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if !middleware.RequireTripMatch(w, r, req.TripID) {
		return
	}

	if req.PaymentTime == 0 {
		req.PaymentTime = time.Now().Unix()
	}

	expense := &models.Expense{
		TripID:            req.TripID,
		Description:       req.Description,
		Amount:            req.Amount,
		Currency:          req.Currency,
		PaymentTime:       req.PaymentTime,
		PaidByParticipant: req.PaidByParticipant,
		PlaceID:           req.PlaceID,
		ModeOfPayment:     req.ModeOfPayment,
		IsPersonal:        req.IsPersonal,
		SplitAmong:        req.SplitAmong,
	}

	if err := h.store.CreateExpense(r.Context(), expense); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(expense)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	expense, err := h.store.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	if !middleware.RequireTripMatch(w, r, expense.TripID) {
		return
	}

	if err := h.store.DeleteExpense(r.Context(), expense.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
