// Package analytics contains the use cases that turn stored records into
// derived views. Nothing computed here is cached or stored.
package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// WindowInput is the raw window selection received at the API boundary.
type WindowInput struct {
	Mode  string // "month" (default) or "year"
	Month string // Full English month name, month mode only
	Year  string // Four digits
}

// IsEmpty reports whether no part of the window was given.
func (in WindowInput) IsEmpty() bool {
	return strings.TrimSpace(in.Mode) == "" &&
		strings.TrimSpace(in.Month) == "" &&
		strings.TrimSpace(in.Year) == ""
}

// ParseWindow validates a window selection. The month is ignored in year mode.
func ParseWindow(in WindowInput) (aggregation.Window, error) {
	mode := aggregation.Mode(strings.ToLower(strings.TrimSpace(in.Mode)))
	if mode == "" {
		mode = aggregation.ModeMonth
	}
	if mode != aggregation.ModeMonth && mode != aggregation.ModeYear {
		return aggregation.Window{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidWindowMode,
			"mode must be 'month' or 'year'",
			domainerror.ErrInvalidWindowMode,
		)
	}

	yearStr := strings.TrimSpace(in.Year)
	year, err := strconv.Atoi(yearStr)
	if err != nil || len(yearStr) != 4 || year < aggregation.MinYear || year > aggregation.MaxYear {
		return aggregation.Window{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidYear,
			"year must be a four-digit number",
			domainerror.ErrInvalidYear,
		)
	}

	if mode == aggregation.ModeYear {
		return aggregation.YearWindow(year), nil
	}

	if strings.TrimSpace(in.Month) == "" {
		return aggregation.Window{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingMonth,
			"month is required in month mode",
			domainerror.ErrMissingMonth,
		)
	}
	month, ok := aggregation.ParseMonth(in.Month)
	if !ok {
		return aggregation.Window{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidMonth,
			fmt.Sprintf("month must be one of: %s", strings.Join(aggregation.MonthNames[:], ", ")),
			domainerror.ErrInvalidMonth,
		)
	}

	return aggregation.MonthWindow(year, month), nil
}

// loadTransactions fetches the user's transactions dated in w, or all of them
// when w is nil.
func loadTransactions(
	ctx context.Context,
	repo adapter.TransactionRepository,
	userID uuid.UUID,
	w *aggregation.Window,
	kinds ...entity.TransactionKind,
) ([]entity.Transaction, error) {
	filter := adapter.TransactionFilter{UserID: userID, Kinds: kinds}
	if w != nil {
		start, end := w.Bounds()
		filter.StartDate = &start
		filter.EndDate = &end
	}

	found, err := repo.FindByUser(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	out := make([]entity.Transaction, 0, len(found))
	for _, t := range found {
		if t != nil {
			out = append(out, *t)
		}
	}
	return out, nil
}
