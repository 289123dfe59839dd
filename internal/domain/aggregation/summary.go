package aggregation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/entity"
)

// KindTotal is the total of one transaction kind.
type KindTotal struct {
	Kind  entity.TransactionKind
	Total decimal.Decimal
}

// CategoryTotal is the outflow total of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Share    int // Percentage of the window's total outflow
	Count    int
}

// PeriodSummary is the derived summary of one window.
type PeriodSummary struct {
	Window       Window
	Count        int
	ByKind       []KindTotal // Every kind, in entity.TransactionKinds order
	ByCategory   []CategoryTotal
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	Net          decimal.Decimal
	SavingsRate  int // round(100 * net / inflow), 0 without inflow
	// Outstanding debt over non-settled records dated in the window.
	OutstandingBorrowed decimal.Decimal
	OutstandingLent     decimal.Decimal
}

// Summarize computes the summary of the transactions dated in w.
func Summarize(records []entity.Transaction, w Window) PeriodSummary {
	scoped := FilterByWindow(records, w)

	s := PeriodSummary{
		Window: w,
		Count:  len(scoped),
		ByKind: make([]KindTotal, 0, len(entity.TransactionKinds)),
	}

	for _, k := range entity.TransactionKinds {
		s.ByKind = append(s.ByKind, KindTotal{
			Kind:  k,
			Total: SumByKind(scoped, OfKind[entity.Transaction](string(k))),
		})
	}

	s.TotalInflow = SumByKind(scoped, func(t entity.Transaction) bool { return t.Kind.IsInflow() })
	s.TotalOutflow = SumByKind(scoped, func(t entity.Transaction) bool { return t.Kind.IsOutflow() })
	s.Net = s.TotalInflow.Sub(s.TotalOutflow)
	s.SavingsRate = Percentage(s.Net, s.TotalInflow)

	pending := func(t entity.Transaction) bool { return !t.IsSettled() }
	s.OutstandingBorrowed = SumByKind(scoped, And(OfKind[entity.Transaction](string(entity.TransactionKindBorrow)), pending))
	s.OutstandingLent = SumByKind(scoped, And(OfKind[entity.Transaction](string(entity.TransactionKindLend)), pending))

	s.ByCategory = categoryTotals(scoped, s.TotalOutflow)
	return s
}

// categoryTotals groups outflow records by category name. Categories are
// matched case-insensitively; the first-seen spelling is kept, and an empty
// category is reported as "Other".
func categoryTotals(records []entity.Transaction, totalOutflow decimal.Decimal) []CategoryTotal {
	index := make(map[string]int)
	out := make([]CategoryTotal, 0)

	for _, r := range records {
		if !r.Kind.IsOutflow() {
			continue
		}
		name := strings.TrimSpace(r.Category)
		if name == "" {
			name = "Other"
		}
		key := strings.ToLower(name)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, CategoryTotal{Category: name, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(r.Amount)
		out[i].Count++
	}

	for i := range out {
		out[i].Share = Percentage(out[i].Total, totalOutflow)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return strings.ToLower(out[i].Category) < strings.ToLower(out[j].Category)
	})
	return out
}
