package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/life-planner/backend/internal/application/usecase/replication"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/integration/entrypoint/dto"
)

// SyncController handles replica synchronization endpoints.
type SyncController struct {
	pushUseCase      *replication.PushDeltasUseCase
	snapshotUseCase  *replication.GetSnapshotUseCase
	reconcileUseCase *replication.ReconcileUseCase
	statusUseCase    *replication.GetStatusUseCase
}

// NewSyncController creates a new sync controller instance.
func NewSyncController(
	pushUseCase *replication.PushDeltasUseCase,
	snapshotUseCase *replication.GetSnapshotUseCase,
	reconcileUseCase *replication.ReconcileUseCase,
	statusUseCase *replication.GetStatusUseCase,
) *SyncController {
	return &SyncController{
		pushUseCase:      pushUseCase,
		snapshotUseCase:  snapshotUseCase,
		reconcileUseCase: reconcileUseCase,
		statusUseCase:    statusUseCase,
	}
}

// Push handles POST /sync/deltas requests. Accepted deltas are queued and
// stored asynchronously.
func (c *SyncController) Push(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.PushDeltasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidDeltaPayload),
		})
		return
	}

	output, err := c.pushUseCase.Execute(ctx.Request.Context(), replication.PushDeltasInput{
		UserID: userID,
		Deltas: req.Deltas,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.ToPushDeltasResponse(output))
}

// Snapshot handles GET /sync/snapshot requests.
func (c *SyncController) Snapshot(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.snapshotUseCase.Execute(ctx.Request.Context(), replication.GetSnapshotInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	resp, err := dto.ToSnapshotResponse(output.State)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Reconcile handles POST /sync/reconcile requests.
func (c *SyncController) Reconcile(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.ReconcileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidDeltaPayload),
		})
		return
	}

	output, err := c.reconcileUseCase.Execute(ctx.Request.Context(), replication.ReconcileInput{
		UserID:   userID,
		Versions: req.Versions,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	snapshot, err := dto.ToSnapshotResponse(output.State)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ReconcileResponse{
		SnapshotResponse: snapshot,
		Queued:           output.Queued,
	})
}

// Status handles GET /sync/status requests.
func (c *SyncController) Status(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.statusUseCase.Execute(ctx.Request.Context(), replication.GetStatusInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}
