package accounting

import (
	"sort"

	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Commission computes the derived commission for a single entry from the
// method's three weighted rates:
//
//	entry*entryRate/100 + exit*exitRate/100 + delivery*deliveryRate/100
//
// Decimal arithmetic throughout; the /100 is an exact decimal shift, so no
// rounding happens here. Display rounding is the presentation layer's job.
func Commission(method domain.Method, entry domain.LedgerEntry) decimal.Decimal {
	entryPart := entry.Entry.Mul(method.EntryCommissionRate).Shift(-2)
	exitPart := entry.Exit.Mul(method.ExitCommissionRate).Shift(-2)
	deliveryPart := entry.Delivery.Mul(method.DeliveryCommissionRate).Shift(-2)
	return entryPart.Add(exitPart).Add(deliveryPart)
}

// FoldEntries derives commission and running balance for a set of entries.
//
// Entries may arrive in any order; they are stably sorted ascending by entry
// date first. Ties cannot occur because (method, date) is unique. The
// accumulator is seeded with the method's static opening balance and carries
// left to right:
//
//	balance(i) = balance(i-1) + supplement(i) + entry(i) - commission(i) - payment(i) - delivery(i)
//
// The seed is always Method.OpeningBalance regardless of how the input set was
// scoped. A month view therefore re-derives its own running total instead of
// chaining off the previous month's close; this per-period independence is
// deliberate, preserved source behavior.
//
// Balances may go negative; no clamping is applied. The input slice is not
// mutated.
func FoldEntries(method domain.Method, entries []domain.LedgerEntry) []domain.FoldedEntry {
	ordered := make([]domain.LedgerEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EntryDate.Before(ordered[j].EntryDate)
	})

	folded := make([]domain.FoldedEntry, len(ordered))
	balance := method.OpeningBalance
	for i, entry := range ordered {
		commission := Commission(method, entry)
		balance = balance.
			Add(entry.Supplement).
			Add(entry.Entry).
			Sub(commission).
			Sub(entry.Payment).
			Sub(entry.Delivery)
		folded[i] = domain.FoldedEntry{
			LedgerEntry: entry,
			Commission:  commission,
			Balance:     balance,
		}
	}
	return folded
}

// CurrentBalance folds the full entry history of a method and returns the
// final balance, or the opening balance when there is no history.
func CurrentBalance(method domain.Method, entries []domain.LedgerEntry) decimal.Decimal {
	folded := FoldEntries(method, entries)
	if len(folded) == 0 {
		return method.OpeningBalance
	}
	return folded[len(folded)-1].Balance
}

// ComputeTotals reduces a folded, ordered sequence to its column-wise sums and
// closing balance. The sums cover exactly the rows supplied; locked rows are
// never excluded. The closing balance is the last row's balance, falling back
// to the method's opening balance for an empty sequence.
func ComputeTotals(method domain.Method, rows []domain.FoldedEntry) domain.PeriodTotals {
	totals := domain.PeriodTotals{
		Supplement:     decimal.Zero,
		Entry:          decimal.Zero,
		Exit:           decimal.Zero,
		Commission:     decimal.Zero,
		Payment:        decimal.Zero,
		Delivery:       decimal.Zero,
		ClosingBalance: method.OpeningBalance,
	}
	for _, row := range rows {
		totals.Supplement = totals.Supplement.Add(row.Supplement)
		totals.Entry = totals.Entry.Add(row.Entry)
		totals.Exit = totals.Exit.Add(row.Exit)
		totals.Commission = totals.Commission.Add(row.Commission)
		totals.Payment = totals.Payment.Add(row.Payment)
		totals.Delivery = totals.Delivery.Add(row.Delivery)
	}
	if len(rows) > 0 {
		totals.ClosingBalance = rows[len(rows)-1].Balance
	}
	return totals
}
