package accounting_test

import (
	"testing"
	"time"

	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	"github.com/fleetops/fleet_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testMethod(opening string, entryRate, exitRate, deliveryRate string) domain.Method {
	return domain.Method{
		MethodID:               "m-1",
		CompanyID:              "c-1",
		Name:                   "Test Channel",
		EntryCommissionRate:    dec(entryRate),
		ExitCommissionRate:     dec(exitRate),
		DeliveryCommissionRate: dec(deliveryRate),
		OpeningBalance:         dec(opening),
		Status:                 domain.MethodActive,
	}
}

func TestCommission_WeightedRates(t *testing.T) {
	method := testMethod("0", "2.5", "1.5", "3.0")
	entry := domain.LedgerEntry{
		Entry:    dec("1000"),
		Exit:     dec("200"),
		Delivery: dec("100"),
	}

	// 1000*2.5% + 200*1.5% + 100*3.0% = 25 + 3 + 3 = 31
	commission := accounting.Commission(method, entry)
	assert.True(t, commission.Equal(dec("31")), "got %s", commission)
}

func TestCommission_FractionalCentsNotRounded(t *testing.T) {
	method := testMethod("0", "2.5", "0", "0")
	entry := domain.LedgerEntry{Entry: dec("101")}

	// 101*2.5% = 2.525, kept exact mid-fold
	commission := accounting.Commission(method, entry)
	assert.True(t, commission.Equal(dec("2.525")), "got %s", commission)
}

func TestFoldEntries_SingleEntryScenario(t *testing.T) {
	// openingBalance=50000, rates (2.5, 1.5, 3.0), one entry of 1000
	method := testMethod("50000", "2.5", "1.5", "3.0")
	entries := []domain.LedgerEntry{
		{EntryID: "e-1", EntryDate: day(2024, time.March, 1), Entry: dec("1000")},
	}

	folded := accounting.FoldEntries(method, entries)
	require.Len(t, folded, 1)
	assert.True(t, folded[0].Commission.Equal(dec("25")), "commission %s", folded[0].Commission)
	assert.True(t, folded[0].Balance.Equal(dec("50975")), "balance %s", folded[0].Balance)
}

func TestFoldEntries_ChainedAccumulation(t *testing.T) {
	method := testMethod("500", "10", "0", "0")
	entries := []domain.LedgerEntry{
		{EntryID: "e-2", EntryDate: day(2024, time.March, 2), Payment: dec("50")},
		{EntryID: "e-1", EntryDate: day(2024, time.March, 1), Entry: dec("100")},
	}

	folded := accounting.FoldEntries(method, entries)
	require.Len(t, folded, 2)

	// Rows come back sorted ascending by date even though input was not.
	assert.Equal(t, "e-1", folded[0].EntryID)
	assert.Equal(t, "e-2", folded[1].EntryID)

	// day1: 500 + 100 - 10 = 590; day2: 590 - 50 = 540
	assert.True(t, folded[0].Commission.Equal(dec("10")))
	assert.True(t, folded[0].Balance.Equal(dec("590")))
	assert.True(t, folded[1].Commission.Equal(decimal.Zero))
	assert.True(t, folded[1].Balance.Equal(dec("540")))
}

func TestFoldEntries_RecurrenceHoldsForEveryRow(t *testing.T) {
	method := testMethod("-120.55", "2.5", "1.5", "3.0")
	entries := []domain.LedgerEntry{
		{EntryID: "e-1", EntryDate: day(2024, time.February, 1), Entry: dec("330.10"), Payment: dec("12")},
		{EntryID: "e-2", EntryDate: day(2024, time.February, 2), Exit: dec("75.40"), Supplement: dec("20")},
		{EntryID: "e-3", EntryDate: day(2024, time.February, 3), Delivery: dec("44.44")},
		{EntryID: "e-4", EntryDate: day(2024, time.February, 4), Entry: dec("1"), Exit: dec("2"), Delivery: dec("3"), Supplement: dec("4"), Payment: dec("5")},
	}

	folded := accounting.FoldEntries(method, entries)
	require.Len(t, folded, len(entries))

	prev := method.OpeningBalance
	for i, row := range folded {
		expectedCommission := row.Entry.Mul(method.EntryCommissionRate).
			Add(row.Exit.Mul(method.ExitCommissionRate)).
			Add(row.Delivery.Mul(method.DeliveryCommissionRate)).
			Div(dec("100"))
		assert.True(t, row.Commission.Sub(expectedCommission).Abs().LessThan(dec("0.000001")),
			"row %d commission %s != %s", i, row.Commission, expectedCommission)

		expectedBalance := prev.Add(row.Supplement).Add(row.Entry).
			Sub(row.Commission).Sub(row.Payment).Sub(row.Delivery)
		assert.True(t, row.Balance.Equal(expectedBalance), "row %d balance %s != %s", i, row.Balance, expectedBalance)
		prev = row.Balance
	}
}

func TestFoldEntries_SortedAscendingNoDuplicates(t *testing.T) {
	method := testMethod("0", "0", "0", "0")
	var entries []domain.LedgerEntry
	// Insert in reverse to prove the fold sorts.
	for d := 28; d >= 1; d-- {
		entries = append(entries, domain.LedgerEntry{
			EntryID:   "e",
			EntryDate: day(2023, time.February, d),
		})
	}

	folded := accounting.FoldEntries(method, entries)
	require.Len(t, folded, 28)
	for i := 1; i < len(folded); i++ {
		assert.True(t, folded[i-1].EntryDate.Before(folded[i].EntryDate),
			"rows not strictly ascending at index %d", i)
	}
}

func TestFoldEntries_BalanceMayGoNegative(t *testing.T) {
	method := testMethod("100", "0", "0", "0")
	entries := []domain.LedgerEntry{
		{EntryID: "e-1", EntryDate: day(2024, time.June, 1), Payment: dec("250")},
	}

	folded := accounting.FoldEntries(method, entries)
	require.Len(t, folded, 1)
	assert.True(t, folded[0].Balance.Equal(dec("-150")), "balance %s", folded[0].Balance)
}

func TestFoldEntries_DoesNotMutateInput(t *testing.T) {
	method := testMethod("0", "0", "0", "0")
	entries := []domain.LedgerEntry{
		{EntryID: "b", EntryDate: day(2024, time.June, 2)},
		{EntryID: "a", EntryDate: day(2024, time.June, 1)},
	}

	_ = accounting.FoldEntries(method, entries)
	assert.Equal(t, "b", entries[0].EntryID)
	assert.Equal(t, "a", entries[1].EntryID)
}

func TestCurrentBalance_EmptyHistoryIsOpeningBalance(t *testing.T) {
	method := testMethod("1234.56", "2.5", "1.5", "3.0")
	balance := accounting.CurrentBalance(method, nil)
	assert.True(t, balance.Equal(dec("1234.56")))
}

func TestCurrentBalance_FullHistory(t *testing.T) {
	method := testMethod("50000", "2.5", "1.5", "3.0")
	entries := []domain.LedgerEntry{
		{EntryID: "e-1", EntryDate: day(2024, time.January, 15), Entry: dec("1000")},
		{EntryID: "e-2", EntryDate: day(2024, time.February, 10), Payment: dec("500")},
	}

	// 50000 + 1000 - 25 = 50975; 50975 - 500 = 50475
	balance := accounting.CurrentBalance(method, entries)
	assert.True(t, balance.Equal(dec("50475")), "balance %s", balance)
}

func TestComputeTotals_ColumnSumsAndClosingBalance(t *testing.T) {
	method := testMethod("100", "10", "0", "0")
	entries := []domain.LedgerEntry{
		{EntryID: "e-1", EntryDate: day(2024, time.May, 1), Entry: dec("200"), Supplement: dec("10"), Locked: true},
		{EntryID: "e-2", EntryDate: day(2024, time.May, 2), Exit: dec("30"), Payment: dec("40"), Delivery: dec("5")},
	}
	folded := accounting.FoldEntries(method, entries)

	totals := accounting.ComputeTotals(method, folded)
	assert.True(t, totals.Supplement.Equal(dec("10")))
	assert.True(t, totals.Entry.Equal(dec("200")))
	assert.True(t, totals.Exit.Equal(dec("30")))
	assert.True(t, totals.Payment.Equal(dec("40")))
	assert.True(t, totals.Delivery.Equal(dec("5")))
	// Commission: 200*10% = 20 on day 1, 0 on day 2; locked rows still counted.
	assert.True(t, totals.Commission.Equal(dec("20")))
	assert.True(t, totals.ClosingBalance.Equal(folded[len(folded)-1].Balance))
}

func TestComputeTotals_EmptySequence(t *testing.T) {
	method := testMethod("777", "1", "1", "1")
	totals := accounting.ComputeTotals(method, nil)
	assert.True(t, totals.ClosingBalance.Equal(dec("777")))
	assert.True(t, totals.Entry.Equal(decimal.Zero))
	assert.True(t, totals.Commission.Equal(decimal.Zero))
}

func TestMonthDays_LeapAndNonLeapFebruary(t *testing.T) {
	assert.Len(t, accounting.MonthDays(2023, time.February), 28)
	assert.Len(t, accounting.MonthDays(2024, time.February), 29)
	assert.Len(t, accounting.MonthDays(2024, time.April), 30)
	assert.Len(t, accounting.MonthDays(2024, time.December), 31)
}

func TestMonthDays_ContiguousAscending(t *testing.T) {
	days := accounting.MonthDays(2024, time.February)
	require.NotEmpty(t, days)
	assert.Equal(t, day(2024, time.February, 1), days[0])
	assert.Equal(t, day(2024, time.February, 29), days[len(days)-1])
	for i := 1; i < len(days); i++ {
		assert.Equal(t, days[i-1].AddDate(0, 0, 1), days[i])
	}
}

func TestMonthRange(t *testing.T) {
	start, end := accounting.MonthRange(2024, time.February)
	assert.Equal(t, day(2024, time.February, 1), start)
	assert.Equal(t, day(2024, time.February, 29), end)

	assert.Equal(t, 28, accounting.DaysInMonth(2023, time.February))
	assert.Equal(t, 31, accounting.DaysInMonth(2025, time.January))
}
