package dto

import (
	"time"

	"github.com/life-planner/backend/internal/application/usecase/habit"
	"github.com/life-planner/backend/internal/domain/entity"
	"github.com/life-planner/backend/internal/domain/state"
)

// CreateHabitRequest represents the request body for habit creation.
type CreateHabitRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Category string `json:"category,omitempty" binding:"max=100"`
}

// RecordCompletionRequest represents the request body for logging a habit day.
type RecordCompletionRequest struct {
	Date      string `json:"date" binding:"required"`
	Completed *bool  `json:"completed"` // Defaults to true
}

// HabitResponse represents a habit in API responses.
type HabitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompletionResponse represents a habit history entry in API responses.
type CompletionResponse struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HabitListResponse represents the habits of a user with their history.
type HabitListResponse struct {
	Habits      []HabitResponse      `json:"habits"`
	Completions []CompletionResponse `json:"completions"`
}

// ToHabitResponse converts a habit entity to its response DTO.
func ToHabitResponse(h *entity.Habit) HabitResponse {
	return HabitResponse{
		ID:        h.ID.String(),
		Name:      h.Name,
		Category:  h.Category,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// ToCompletionResponse converts a habit history entry to its response DTO.
func ToCompletionResponse(c *entity.HabitCompletion) CompletionResponse {
	return CompletionResponse{
		ID:        c.ID.String(),
		HabitID:   c.HabitID.String(),
		Date:      c.Date.Format(state.DateLayout),
		Completed: c.Completed,
		Category:  c.Category,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToHabitListResponse converts the list output.
func ToHabitListResponse(output *habit.ListHabitsOutput) HabitListResponse {
	resp := HabitListResponse{
		Habits:      make([]HabitResponse, 0, len(output.Habits)),
		Completions: make([]CompletionResponse, 0, len(output.Completions)),
	}
	for _, h := range output.Habits {
		resp.Habits = append(resp.Habits, ToHabitResponse(h))
	}
	for _, c := range output.Completions {
		resp.Completions = append(resp.Completions, ToCompletionResponse(c))
	}
	return resp
}
