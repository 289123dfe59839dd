package aggregation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/entity"
)

// entityDelimiter separates the counterparty name from the rest of a
// debt description, as in "Rahul: Lunch".
const entityDelimiter = ":"

// EntityLedger aggregates the debt records of one counterparty.
type EntityLedger struct {
	Key           string // Normalized name used for grouping
	DisplayName   string // First-seen raw name
	TotalBorrowed decimal.Decimal
	TotalLent     decimal.Decimal
	Net           decimal.Decimal // TotalLent - TotalBorrowed
	History       []entity.Transaction
}

// EntityName returns the raw counterparty name of a description: the trimmed
// text before the first delimiter, or the whole trimmed description.
func EntityName(description string) string {
	name, _, _ := strings.Cut(description, entityDelimiter)
	return strings.TrimSpace(name)
}

// EntityKey returns the grouping key of a description.
//
// Two different people sharing a name collide under the same key; grouping
// relies on free text only.
func EntityKey(description string) string {
	return strings.ToLower(EntityName(description))
}

// GroupEntities groups borrow and lend records by counterparty. Settled
// records are kept in the history but do not count toward the totals.
// Non-debt records are ignored.
//
// Ledgers with a non-zero net come first, then larger absolute nets, then
// keys in ascending order.
func GroupEntities(records []entity.Transaction) []EntityLedger {
	index := make(map[string]int)
	ledgers := make([]EntityLedger, 0)

	for _, r := range records {
		if !r.Kind.IsDebt() {
			continue
		}

		key := EntityKey(r.Description)
		i, ok := index[key]
		if !ok {
			i = len(ledgers)
			index[key] = i
			ledgers = append(ledgers, EntityLedger{
				Key:           key,
				DisplayName:   EntityName(r.Description),
				TotalBorrowed: decimal.Zero,
				TotalLent:     decimal.Zero,
				Net:           decimal.Zero,
			})
		}

		l := &ledgers[i]
		l.History = append(l.History, r)
		if r.IsSettled() {
			continue
		}
		if r.Kind == entity.TransactionKindBorrow {
			l.TotalBorrowed = l.TotalBorrowed.Add(r.Amount)
		} else {
			l.TotalLent = l.TotalLent.Add(r.Amount)
		}
	}

	for i := range ledgers {
		ledgers[i].Net = ledgers[i].TotalLent.Sub(ledgers[i].TotalBorrowed)
	}

	sort.SliceStable(ledgers, func(i, j int) bool {
		a, b := ledgers[i], ledgers[j]
		if a.Net.IsZero() != b.Net.IsZero() {
			return !a.Net.IsZero()
		}
		if c := a.Net.Abs().Cmp(b.Net.Abs()); c != 0 {
			return c > 0
		}
		return a.Key < b.Key
	})

	return ledgers
}

// LedgersByKey indexes ledgers by their normalized key.
func LedgersByKey(ledgers []EntityLedger) map[string]EntityLedger {
	out := make(map[string]EntityLedger, len(ledgers))
	for _, l := range ledgers {
		out[l.Key] = l
	}
	return out
}
