package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/usecase/analytics"
	"github.com/life-planner/backend/internal/application/usecase/transaction"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
	"github.com/life-planner/backend/internal/domain/state"
	"github.com/life-planner/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase       *transaction.ListTransactionsUseCase
	createUseCase     *transaction.CreateTransactionUseCase
	updateUseCase     *transaction.UpdateTransactionUseCase
	deleteUseCase     *transaction.DeleteTransactionUseCase
	settleUseCase     *transaction.SettleTransactionUseCase
	bulkDeleteUseCase *transaction.BulkDeleteTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	settleUseCase *transaction.SettleTransactionUseCase,
	bulkDeleteUseCase *transaction.BulkDeleteTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		settleUseCase:     settleUseCase,
		bulkDeleteUseCase: bulkDeleteUseCase,
	}
}

// List handles GET /transactions requests. Without window parameters every
// transaction is listed.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{UserID: userID}

	window, err := windowFromQuery(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	input.Window = window

	if kindStr := ctx.Query("kind"); kindStr != "" {
		for _, k := range strings.Split(kindStr, ",") {
			kind := entity.TransactionKind(strings.TrimSpace(k))
			if !kind.IsValid() {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "Unknown transaction kind: " + string(kind),
					Code:  string(domainerror.ErrCodeInvalidTransactionKind),
				})
				return
			}
			input.Kinds = append(input.Kinds, kind)
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(input.Window, output.Transactions))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	date, ok := parseTransactionDate(ctx, req.Date)
	if !ok {
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:      userID,
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
		Kind:        entity.TransactionKind(req.Kind),
		Category:    req.Category,
	}
	if req.Status != nil {
		input.Status = entity.DebtStatus(*req.Status)
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseID(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Description:   req.Description,
		Amount:        req.Amount,
		Category:      req.Category,
	}
	if req.Date != nil {
		date, ok := parseTransactionDate(ctx, *req.Date)
		if !ok {
			return
		}
		input.Date = &date
	}
	if req.Kind != nil {
		kind := entity.TransactionKind(*req.Kind)
		input.Kind = &kind
	}
	if req.Status != nil {
		status := entity.DebtStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseID(ctx, "transaction")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Settle handles POST /transactions/:id/settle requests.
func (c *TransactionController) Settle(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseID(ctx, "transaction")
	if !ok {
		return
	}

	output, err := c.settleUseCase.Execute(ctx.Request.Context(), transaction.SettleTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// BulkDelete handles POST /transactions/bulk-delete requests.
func (c *TransactionController) BulkDelete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.BulkDeleteTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptyTransactionIDs),
		})
		return
	}

	transactionIDs := make([]uuid.UUID, 0, len(req.IDs))
	for _, idStr := range req.IDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid transaction ID format: " + idStr,
			})
			return
		}
		transactionIDs = append(transactionIDs, id)
	}

	output, err := c.bulkDeleteUseCase.Execute(ctx.Request.Context(), transaction.BulkDeleteTransactionsInput{
		TransactionIDs: transactionIDs,
		UserID:         userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BulkDeleteTransactionsResponse{
		DeletedCount: output.DeletedCount,
	})
}

func parseTransactionDate(ctx *gin.Context, value string) (time.Time, bool) {
	date, err := state.ParseDate(value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return time.Time{}, false
	}
	return date, true
}

// windowFromQuery parses the optional mode, month and year query parameters.
// It returns nil when none is given.
func windowFromQuery(ctx *gin.Context) (*aggregation.Window, error) {
	in := windowInput(ctx)
	if in.IsEmpty() {
		return nil, nil
	}
	w, err := analytics.ParseWindow(in)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func windowInput(ctx *gin.Context) analytics.WindowInput {
	return analytics.WindowInput{
		Mode:  ctx.Query("mode"),
		Month: ctx.Query("month"),
		Year:  ctx.Query("year"),
	}
}
