package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/usecase/goal"
)

// SetGoalRequest represents the request body for setting a category limit.
type SetGoalRequest struct {
	Category    string          `json:"category" binding:"required,max=100"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Period      *string         `json:"period,omitempty"`
}

// GoalResponse represents a goal with its spending in the current period.
type GoalResponse struct {
	ID            string         `json:"id"`
	Category      string         `json:"category"`
	LimitAmount   string         `json:"limit_amount"`
	Period        string         `json:"period"`
	CurrentAmount string         `json:"current_amount"`
	Percentage    int            `json:"percentage"`
	Window        WindowResponse `json:"window"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// SetGoalResponse represents the response for setting a goal.
type SetGoalResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	LimitAmount string    `json:"limit_amount"`
	Period      string    `json:"period"`
	Created     bool      `json:"created"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToGoalResponse converts a goal output to its response DTO.
func ToGoalResponse(g *goal.GoalOutput) GoalResponse {
	return GoalResponse{
		ID:            g.Goal.ID.String(),
		Category:      g.Goal.Category,
		LimitAmount:   g.Goal.LimitAmount.StringFixed(2),
		Period:        string(g.Goal.Period),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Percentage:    g.Percentage,
		Window:        ToWindowResponse(g.Window),
		CreatedAt:     g.Goal.CreatedAt,
		UpdatedAt:     g.Goal.UpdatedAt,
	}
}

// ToGoalListResponse converts the list output.
func ToGoalListResponse(output *goal.ListGoalsOutput) GoalListResponse {
	resp := GoalListResponse{Goals: make([]GoalResponse, 0, len(output.Goals))}
	for _, g := range output.Goals {
		resp.Goals = append(resp.Goals, ToGoalResponse(g))
	}
	return resp
}

// ToSetGoalResponse converts the set output.
func ToSetGoalResponse(output *goal.SetGoalOutput) SetGoalResponse {
	return SetGoalResponse{
		ID:          output.Goal.ID.String(),
		Category:    output.Goal.Category,
		LimitAmount: output.Goal.LimitAmount.StringFixed(2),
		Period:      string(output.Goal.Period),
		Created:     output.Created,
		UpdatedAt:   output.Goal.UpdatedAt,
	}
}
