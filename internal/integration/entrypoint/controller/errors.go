// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/integration/entrypoint/dto"
	"github.com/life-planner/backend/internal/integration/entrypoint/middleware"
)

// requireUser returns the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseID parses the :id path parameter or writes a 400.
func parseID(ctx *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + what + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// handleError writes the response of a use case error.
func handleError(ctx *gin.Context, err error) {
	var (
		txnErr   *domainerror.TransactionError
		habitErr *domainerror.HabitError
		goalErr  *domainerror.GoalError
		anlErr   *domainerror.AnalyticsError
		syncErr  *domainerror.SyncError
	)

	switch {
	case errors.As(err, &syncErr):
		ctx.JSON(statusForSyncError(syncErr.Code), dto.ErrorResponse{Error: syncErr.Message, Code: string(syncErr.Code)})
	case errors.As(err, &txnErr):
		ctx.JSON(statusForTransactionError(txnErr.Code), dto.ErrorResponse{Error: txnErr.Message, Code: string(txnErr.Code)})
	case errors.As(err, &habitErr):
		ctx.JSON(statusForHabitError(habitErr.Code), dto.ErrorResponse{Error: habitErr.Message, Code: string(habitErr.Code)})
	case errors.As(err, &goalErr):
		ctx.JSON(statusForGoalError(goalErr.Code), dto.ErrorResponse{Error: goalErr.Message, Code: string(goalErr.Code)})
	case errors.As(err, &anlErr):
		status := http.StatusBadRequest
		if anlErr.Code == domainerror.ErrCodeAnalyticsInternalError {
			status = http.StatusInternalServerError
		}
		ctx.JSON(status, dto.ErrorResponse{Error: anlErr.Message, Code: string(anlErr.Code)})
	default:
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	case domainerror.ErrCodeTransactionInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func statusForHabitError(code domainerror.HabitErrorCode) int {
	switch code {
	case domainerror.ErrCodeHabitNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedHabit:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func statusForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func statusForSyncError(code domainerror.SyncErrorCode) int {
	switch code {
	case domainerror.ErrCodeStaleDelta:
		return http.StatusConflict
	case domainerror.ErrCodeQueueUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
