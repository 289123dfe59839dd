// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/life-planner/backend/internal/domain/aggregation"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// WindowResponse represents the period a response is scoped to.
type WindowResponse struct {
	Mode  string `json:"mode"`
	Year  int    `json:"year"`
	Month string `json:"month,omitempty"`
	Label string `json:"label"`
}

// ToWindowResponse converts an aggregation window.
func ToWindowResponse(w aggregation.Window) WindowResponse {
	resp := WindowResponse{
		Mode:  string(w.Mode),
		Year:  w.Year,
		Label: w.Label(),
	}
	if w.Mode == aggregation.ModeMonth && w.Month >= 1 && w.Month <= 12 {
		resp.Month = aggregation.MonthNames[w.Month-1]
	}
	return resp
}

// ToWindowResponsePtr converts an optional window.
func ToWindowResponsePtr(w *aggregation.Window) *WindowResponse {
	if w == nil {
		return nil
	}
	resp := ToWindowResponse(*w)
	return &resp
}
