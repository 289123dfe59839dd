package aggregation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SumByKind totals the measure of the records matching pred. A nil predicate
// matches every record. Empty input yields zero.
func SumByKind[R Record](records []R, pred func(R) bool) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if pred != nil && !pred(r) {
			continue
		}
		total = total.Add(r.RecordMeasure())
	}
	return total
}

// CountWhere returns how many records match pred. A nil predicate matches all.
func CountWhere[R Record](records []R, pred func(R) bool) int {
	n := 0
	for _, r := range records {
		if pred == nil || pred(r) {
			n++
		}
	}
	return n
}

// OfKind matches records whose kind is one of kinds.
func OfKind[R Record](kinds ...string) func(R) bool {
	return func(r R) bool {
		k := r.RecordKind()
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}
}

// InCategory matches records whose category equals category, ignoring case
// and surrounding spaces.
func InCategory[R Record](category string) func(R) bool {
	category = strings.TrimSpace(category)
	return func(r R) bool {
		return strings.EqualFold(strings.TrimSpace(r.RecordCategory()), category)
	}
}

// And combines predicates; the result matches when all of them do.
func And[R Record](preds ...func(R) bool) func(R) bool {
	return func(r R) bool {
		for _, p := range preds {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}
