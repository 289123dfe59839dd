package aggregation

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/entity"
)

// TrendPoint is one bucket of a cash-flow series.
type TrendPoint struct {
	Label   string
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	// Balance is the running inflow minus outflow from the first bucket up to
	// and including this one.
	Balance decimal.Decimal
}

// BuildTrendSeries buckets the transactions of w into one point per day of the
// month (month mode) or one per calendar month (year mode). Buckets without
// records are present with zero values. Debt records move neither column.
func BuildTrendSeries(records []entity.Transaction, w Window) []TrendPoint {
	if !w.Supported() {
		return []TrendPoint{}
	}

	var points []TrendPoint
	if w.Mode == ModeMonth {
		days := DaysInMonth(w.Year, w.Month)
		points = make([]TrendPoint, days)
		for i := range points {
			points[i] = TrendPoint{Label: strconv.Itoa(i + 1)}
		}
	} else {
		points = make([]TrendPoint, 12)
		for i := range points {
			points[i] = TrendPoint{Label: monthAbbreviations[i]}
		}
	}
	for i := range points {
		points[i].Inflow = decimal.Zero
		points[i].Outflow = decimal.Zero
	}

	for _, r := range records {
		if !w.Contains(r.Date) {
			continue
		}
		idx := int(r.Date.Month()) - 1
		if w.Mode == ModeMonth {
			idx = r.Date.Day() - 1
		}
		switch {
		case r.Kind.IsInflow():
			points[idx].Inflow = points[idx].Inflow.Add(r.Amount)
		case r.Kind.IsOutflow():
			points[idx].Outflow = points[idx].Outflow.Add(r.Amount)
		}
	}

	running := decimal.Zero
	for i := range points {
		running = running.Add(points[i].Inflow).Sub(points[i].Outflow)
		points[i].Balance = running
	}
	return points
}
