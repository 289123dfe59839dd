package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/life-planner/backend/internal/application/adapter"
)

// GetDataRangeInput represents the input for getting data range.
type GetDataRangeInput struct {
	UserID uuid.UUID
}

// GetDataRangeOutput represents the output of getting data range.
type GetDataRangeOutput struct {
	OldestDate        *time.Time
	NewestDate        *time.Time
	Years             []int // Years holding at least one transaction, ascending
	TotalTransactions int
	HasData           bool
}

// GetDataRangeUseCase reports which windows hold data, for window pickers.
type GetDataRangeUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(transactionRepo adapter.TransactionRepository) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves the date range of user's transactions.
func (uc *GetDataRangeUseCase) Execute(ctx context.Context, input GetDataRangeInput) (*GetDataRangeOutput, error) {
	records, err := loadTransactions(ctx, uc.transactionRepo, input.UserID, nil)
	if err != nil {
		return nil, err
	}

	out := &GetDataRangeOutput{
		Years:             []int{},
		TotalTransactions: len(records),
	}
	if len(records) == 0 {
		return out, nil
	}

	oldest, newest := records[0].Date, records[0].Date
	seen := make(map[int]bool)
	for _, r := range records {
		if r.Date.Before(oldest) {
			oldest = r.Date
		}
		if r.Date.After(newest) {
			newest = r.Date
		}
		if !seen[r.Date.Year()] {
			seen[r.Date.Year()] = true
		}
	}
	for y := oldest.Year(); y <= newest.Year(); y++ {
		if seen[y] {
			out.Years = append(out.Years, y)
		}
	}

	out.OldestDate = &oldest
	out.NewestDate = &newest
	out.HasData = true
	return out, nil
}
