package trip

import (
	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
)

// tripResponse deliberately omits the access code hash and the stored
// recovery and security answers.
type tripResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Destination      string  `json:"destination,omitempty"`
	StartDate        string  `json:"startDate,omitempty"`
	EndDate          string  `json:"endDate,omitempty"`
	Budget           float64 `json:"budget"`
	Currency         string  `json:"currency,omitempty"`
	Status           string  `json:"status"`
	RecoveryQuestion string  `json:"recoveryQuestion,omitempty"`
	SecurityQuestion string  `json:"securityQuestion,omitempty"`
	CreatedAt        int64   `json:"createdAt"`
}

func toResponse(t *models.Trip) tripResponse {
	return tripResponse{
		ID:               t.ID,
		Name:             t.Name,
		Destination:      t.Destination,
		StartDate:        t.StartDate,
		EndDate:          t.EndDate,
		Budget:           t.Budget,
		Currency:         t.Currency,
		Status:           t.Status,
		RecoveryQuestion: t.RecoveryQuestion,
		SecurityQuestion: t.SecurityQuestion,
		CreatedAt:        t.CreatedAt,
	}
}

func toResponseList(trips []*models.Trip) []tripResponse {
	resp := make([]tripResponse, len(trips))
	for i, t := range trips {
		resp[i] = toResponse(t)
	}

	return resp
}
