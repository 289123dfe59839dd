package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/life-planner/backend/internal/application/usecase/analytics"
	"github.com/life-planner/backend/internal/integration/entrypoint/dto"
)

// AnalyticsController handles the derived analytics endpoints. Every
// response is computed from the stored records on each request.
type AnalyticsController struct {
	summaryUseCase   *analytics.GetSummaryUseCase
	trendsUseCase    *analytics.GetTrendsUseCase
	entitiesUseCase  *analytics.GetEntitiesUseCase
	habitsUseCase    *analytics.GetHabitBreakdownUseCase
	budgetUseCase    *analytics.GetBudgetBreakdownUseCase
	dataRangeUseCase *analytics.GetDataRangeUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	summaryUseCase *analytics.GetSummaryUseCase,
	trendsUseCase *analytics.GetTrendsUseCase,
	entitiesUseCase *analytics.GetEntitiesUseCase,
	habitsUseCase *analytics.GetHabitBreakdownUseCase,
	budgetUseCase *analytics.GetBudgetBreakdownUseCase,
	dataRangeUseCase *analytics.GetDataRangeUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		summaryUseCase:   summaryUseCase,
		trendsUseCase:    trendsUseCase,
		entitiesUseCase:  entitiesUseCase,
		habitsUseCase:    habitsUseCase,
		budgetUseCase:    budgetUseCase,
		dataRangeUseCase: dataRangeUseCase,
	}
}

// Summary handles GET /analytics/summary requests.
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), analytics.GetSummaryInput{
		UserID: userID,
		Window: windowInput(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output.Summary))
}

// Trends handles GET /analytics/trends requests.
func (c *AnalyticsController) Trends(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.trendsUseCase.Execute(ctx.Request.Context(), analytics.GetTrendsInput{
		UserID: userID,
		Window: windowInput(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}

// Entities handles GET /analytics/entities requests.
func (c *AnalyticsController) Entities(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.entitiesUseCase.Execute(ctx.Request.Context(), analytics.GetEntitiesInput{
		UserID: userID,
		Window: windowInput(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntitiesResponse(output))
}

// HabitBreakdown handles GET /analytics/habits/breakdown requests.
func (c *AnalyticsController) HabitBreakdown(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.habitsUseCase.Execute(ctx.Request.Context(), analytics.GetHabitBreakdownInput{
		UserID: userID,
		Window: windowInput(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBreakdownResponse(output.Window, output.Categories))
}

// BudgetBreakdown handles GET /analytics/budget/breakdown requests.
func (c *AnalyticsController) BudgetBreakdown(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.budgetUseCase.Execute(ctx.Request.Context(), analytics.GetBudgetBreakdownInput{
		UserID: userID,
		Window: windowInput(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBreakdownResponse(output.Window, output.Categories))
}

// DataRange handles GET /analytics/data-range requests.
func (c *AnalyticsController) DataRange(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.dataRangeUseCase.Execute(ctx.Request.Context(), analytics.GetDataRangeInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataRangeResponse(output))
}
