package dto

import (
	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FoldedEntryResponse is an entry row annotated with its derived commission
// and running balance.
type FoldedEntryResponse struct {
	EntryResponse
	Commission decimal.Decimal `json:"commission"`
	Balance    decimal.Decimal `json:"balance"`
}

// TotalsResponse carries the column-wise sums and closing balance of a period.
type TotalsResponse struct {
	Supplement     decimal.Decimal `json:"supplement"`
	Entry          decimal.Decimal `json:"entry"`
	Exit           decimal.Decimal `json:"exit"`
	Commission     decimal.Decimal `json:"commission"`
	Payment        decimal.Decimal `json:"payment"`
	Delivery       decimal.Decimal `json:"delivery"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// LedgerViewResponse is the folded rows plus totals for one period.
type LedgerViewResponse struct {
	Rows   []FoldedEntryResponse `json:"rows"`
	Totals TotalsResponse        `json:"totals"`
}

// ToLedgerViewResponse converts a domain.LedgerView to its DTO form.
func ToLedgerViewResponse(view *domain.LedgerView) LedgerViewResponse {
	rows := make([]FoldedEntryResponse, len(view.Rows))
	for i := range view.Rows {
		rows[i] = FoldedEntryResponse{
			EntryResponse: ToEntryResponse(&view.Rows[i].LedgerEntry),
			Commission:    view.Rows[i].Commission,
			Balance:       view.Rows[i].Balance,
		}
	}
	return LedgerViewResponse{
		Rows: rows,
		Totals: TotalsResponse{
			Supplement:     view.Totals.Supplement,
			Entry:          view.Totals.Entry,
			Exit:           view.Totals.Exit,
			Commission:     view.Totals.Commission,
			Payment:        view.Totals.Payment,
			Delivery:       view.Totals.Delivery,
			ClosingBalance: view.Totals.ClosingBalance,
		},
	}
}

// MaterializeMonthResponse reports the per-day outcome of a materialization pass.
// Failed days are listed explicitly so the caller can surface them; they stay
// missing and are picked up again by the next pass.
type MaterializeMonthResponse struct {
	Created     int      `json:"created"`
	Existing    int      `json:"existing"`
	Failed      int      `json:"failed"`
	FailedDates []string `json:"failedDates,omitempty"`
}

// ToMaterializeMonthResponse converts a domain.MaterializationResult to its DTO form.
func ToMaterializeMonthResponse(res *domain.MaterializationResult) MaterializeMonthResponse {
	out := MaterializeMonthResponse{
		Created:  len(res.Created),
		Existing: len(res.Existing),
		Failed:   len(res.Failed),
	}
	for _, d := range res.Failed {
		out.FailedDates = append(out.FailedDates, d.Format(entryDateFormat))
	}
	return out
}

// MethodBalanceResponse pairs a method with its full-history current balance.
type MethodBalanceResponse struct {
	Method  MethodResponse  `json:"method"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceResponse carries a single derived balance figure.
type BalanceResponse struct {
	MethodID string          `json:"methodID"`
	Balance  decimal.Decimal `json:"balance"`
}

// ToCompanyBalanceSummaryResponse converts the dashboard summary to DTOs.
func ToCompanyBalanceSummaryResponse(balances []domain.MethodBalance) []MethodBalanceResponse {
	res := make([]MethodBalanceResponse, len(balances))
	for i := range balances {
		res[i] = MethodBalanceResponse{
			Method:  ToMethodResponse(&balances[i].Method),
			Balance: balances[i].Balance,
		}
	}
	return res
}
