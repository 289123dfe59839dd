package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/life-planner/backend/internal/application/usecase/habit"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/domain/state"
	"github.com/life-planner/backend/internal/integration/entrypoint/dto"
)

// HabitController handles habit endpoints.
type HabitController struct {
	listUseCase   *habit.ListHabitsUseCase
	createUseCase *habit.CreateHabitUseCase
	deleteUseCase *habit.DeleteHabitUseCase
	recordUseCase *habit.RecordCompletionUseCase
}

// NewHabitController creates a new habit controller instance.
func NewHabitController(
	listUseCase *habit.ListHabitsUseCase,
	createUseCase *habit.CreateHabitUseCase,
	deleteUseCase *habit.DeleteHabitUseCase,
	recordUseCase *habit.RecordCompletionUseCase,
) *HabitController {
	return &HabitController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
		recordUseCase: recordUseCase,
	}
}

// List handles GET /habits requests. Window parameters scope the history.
func (c *HabitController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	window, err := windowFromQuery(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), habit.ListHabitsInput{
		UserID: userID,
		Window: window,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHabitListResponse(output))
}

// Create handles POST /habits requests.
func (c *HabitController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingHabitFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), habit.CreateHabitInput{
		UserID:   userID,
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToHabitResponse(output.Habit))
}

// Delete handles DELETE /habits/:id requests. The history of the habit is kept.
func (c *HabitController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	habitID, ok := parseID(ctx, "habit")
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), habit.DeleteHabitInput{
		HabitID: habitID,
		UserID:  userID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RecordCompletion handles POST /habits/:id/completions requests.
func (c *HabitController) RecordCompletion(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	habitID, ok := parseID(ctx, "habit")
	if !ok {
		return
	}

	var req dto.RecordCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingHabitFields),
		})
		return
	}

	date, err := state.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidCompletionDate),
		})
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), habit.RecordCompletionInput{
		UserID:    userID,
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompletionResponse(output.Completion))
}
