package dto

import (
	"github.com/life-planner/backend/internal/application/usecase/analytics"
	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/state"
)

// KindTotalResponse represents the total of one transaction kind.
type KindTotalResponse struct {
	Kind  string `json:"kind"`
	Total string `json:"total"`
}

// CategoryTotalResponse represents the outflow of one category.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
	Share    int    `json:"share"`
	Count    int    `json:"count"`
}

// SummaryResponse represents the summary of one period.
type SummaryResponse struct {
	Window              WindowResponse          `json:"window"`
	Count               int                     `json:"count"`
	ByKind              []KindTotalResponse     `json:"by_kind"`
	ByCategory          []CategoryTotalResponse `json:"by_category"`
	TotalInflow         string                  `json:"total_inflow"`
	TotalOutflow        string                  `json:"total_outflow"`
	Net                 string                  `json:"net"`
	SavingsRate         int                     `json:"savings_rate"`
	OutstandingBorrowed string                  `json:"outstanding_borrowed"`
	OutstandingLent     string                  `json:"outstanding_lent"`
}

// TrendPointResponse represents one bucket of a cash-flow series.
type TrendPointResponse struct {
	Label   string `json:"label"`
	Inflow  string `json:"inflow"`
	Outflow string `json:"outflow"`
	Balance string `json:"balance"`
}

// TrendsResponse represents a cash-flow series.
type TrendsResponse struct {
	Window WindowResponse       `json:"window"`
	Points []TrendPointResponse `json:"points"`
}

// EntityResponse represents the debt ledger of one counterparty.
type EntityResponse struct {
	Key           string                `json:"key"`
	Name          string                `json:"name"`
	TotalBorrowed string                `json:"total_borrowed"`
	TotalLent     string                `json:"total_lent"`
	Net           string                `json:"net"`
	History       []TransactionResponse `json:"history"`
}

// EntitiesResponse represents every counterparty ledger.
type EntitiesResponse struct {
	Window   *WindowResponse  `json:"window,omitempty"`
	Entities []EntityResponse `json:"entities"`
}

// CategoryPercentageResponse represents one row of a category breakdown.
type CategoryPercentageResponse struct {
	Category    string `json:"category"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
	Percentage  int    `json:"percentage"`
}

// BreakdownResponse represents a category breakdown.
type BreakdownResponse struct {
	Window     WindowResponse               `json:"window"`
	Categories []CategoryPercentageResponse `json:"categories"`
}

// DataRangeResponse represents the span of a user's transactions.
type DataRangeResponse struct {
	OldestDate        *string `json:"oldest_date"`
	NewestDate        *string `json:"newest_date"`
	Years             []int   `json:"years"`
	TotalTransactions int     `json:"total_transactions"`
	HasData           bool    `json:"has_data"`
}

// ToSummaryResponse converts a period summary.
func ToSummaryResponse(s aggregation.PeriodSummary) SummaryResponse {
	resp := SummaryResponse{
		Window:              ToWindowResponse(s.Window),
		Count:               s.Count,
		ByKind:              make([]KindTotalResponse, 0, len(s.ByKind)),
		ByCategory:          make([]CategoryTotalResponse, 0, len(s.ByCategory)),
		TotalInflow:         s.TotalInflow.StringFixed(2),
		TotalOutflow:        s.TotalOutflow.StringFixed(2),
		Net:                 s.Net.StringFixed(2),
		SavingsRate:         s.SavingsRate,
		OutstandingBorrowed: s.OutstandingBorrowed.StringFixed(2),
		OutstandingLent:     s.OutstandingLent.StringFixed(2),
	}
	for _, k := range s.ByKind {
		resp.ByKind = append(resp.ByKind, KindTotalResponse{Kind: string(k.Kind), Total: k.Total.StringFixed(2)})
	}
	for _, c := range s.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryTotalResponse{
			Category: c.Category,
			Total:    c.Total.StringFixed(2),
			Share:    c.Share,
			Count:    c.Count,
		})
	}
	return resp
}

// ToTrendsResponse converts a trend series.
func ToTrendsResponse(output *analytics.GetTrendsOutput) TrendsResponse {
	resp := TrendsResponse{
		Window: ToWindowResponse(output.Window),
		Points: make([]TrendPointResponse, 0, len(output.Points)),
	}
	for _, p := range output.Points {
		resp.Points = append(resp.Points, TrendPointResponse{
			Label:   p.Label,
			Inflow:  p.Inflow.StringFixed(2),
			Outflow: p.Outflow.StringFixed(2),
			Balance: p.Balance.StringFixed(2),
		})
	}
	return resp
}

// ToEntitiesResponse converts the counterparty ledgers.
func ToEntitiesResponse(output *analytics.GetEntitiesOutput) EntitiesResponse {
	resp := EntitiesResponse{
		Window:   ToWindowResponsePtr(output.Window),
		Entities: make([]EntityResponse, 0, len(output.Entities)),
	}
	for _, e := range output.Entities {
		resp.Entities = append(resp.Entities, EntityResponse{
			Key:           e.Key,
			Name:          e.DisplayName,
			TotalBorrowed: e.TotalBorrowed.StringFixed(2),
			TotalLent:     e.TotalLent.StringFixed(2),
			Net:           e.Net.StringFixed(2),
			History:       toTransactionValueResponses(e.History),
		})
	}
	return resp
}

// ToBreakdownResponse converts a category breakdown.
func ToBreakdownResponse(window aggregation.Window, rows []aggregation.CategoryPercentage) BreakdownResponse {
	resp := BreakdownResponse{
		Window:     ToWindowResponse(window),
		Categories: make([]CategoryPercentageResponse, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Categories = append(resp.Categories, CategoryPercentageResponse{
			Category:    r.Category,
			Numerator:   r.Numerator.String(),
			Denominator: r.Denominator.String(),
			Percentage:  r.Percentage,
		})
	}
	return resp
}

// ToDataRangeResponse converts the data range output.
func ToDataRangeResponse(output *analytics.GetDataRangeOutput) DataRangeResponse {
	resp := DataRangeResponse{
		Years:             output.Years,
		TotalTransactions: output.TotalTransactions,
		HasData:           output.HasData,
	}
	if resp.Years == nil {
		resp.Years = []int{}
	}
	if output.OldestDate != nil {
		s := output.OldestDate.Format(state.DateLayout)
		resp.OldestDate = &s
	}
	if output.NewestDate != nil {
		s := output.NewestDate.Format(state.DateLayout)
		resp.NewestDate = &s
	}
	return resp
}
