package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FoldedEntry is a ledger entry annotated with its derived values.
// Commission and Balance exist only on folded rows; they are recomputed from
// the raw fields and the method's opening balance on every read.
type FoldedEntry struct {
	LedgerEntry
	Commission decimal.Decimal `json:"commission"`
	Balance    decimal.Decimal `json:"balance"`
}

// PeriodTotals is the column-wise reduction over a folded sequence.
// Sums cover exactly the rows supplied; locked rows are not excluded.
type PeriodTotals struct {
	Supplement     decimal.Decimal `json:"supplement"`
	Entry          decimal.Decimal `json:"entry"`
	Exit           decimal.Decimal `json:"exit"`
	Commission     decimal.Decimal `json:"commission"`
	Payment        decimal.Decimal `json:"payment"`
	Delivery       decimal.Decimal `json:"delivery"`
	ClosingBalance decimal.Decimal `json:"closingBalance"` // Last row's balance, or the method's opening balance when empty
}

// LedgerView is an ordered folded sequence plus its totals, the unit the
// presentation layer consumes for a period.
type LedgerView struct {
	Rows   []FoldedEntry `json:"rows"`
	Totals PeriodTotals  `json:"totals"`
}

// MaterializationResult reports the per-day outcome of one materialization pass.
// Failed days stay absent for this pass and are retried on the next one since
// they remain missing.
type MaterializationResult struct {
	Created  []time.Time `json:"created"`
	Existing []time.Time `json:"existing"`
	Failed   []time.Time `json:"failed"`
}

// MethodBalance pairs a method with its full-history current balance for
// dashboard summaries.
type MethodBalance struct {
	Method  Method          `json:"method"`
	Balance decimal.Decimal `json:"balance"`
}
