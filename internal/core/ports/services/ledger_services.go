package services

import (
	"context"
	"time"

	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	"github.com/fleetops/fleet_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines the derivation (read) side of the method ledger engine.
type LedgerReaderSvc interface {
	// GetMonthLedger materializes the month and returns its folded rows and
	// totals. This is the month-view call site: period mode, seeded from the
	// method's static opening balance.
	GetMonthLedger(ctx context.Context, companyID, methodID string, year int, month time.Month) (*domain.LedgerView, error)

	// ComputePeriod folds the entries within [from, to] and aggregates totals.
	ComputePeriod(ctx context.Context, companyID, methodID string, from, to time.Time) (*domain.LedgerView, error)

	// ComputeCurrentBalance folds the method's full entry history and returns
	// the final balance (full-history mode).
	ComputeCurrentBalance(ctx context.Context, companyID, methodID string) (decimal.Decimal, error)

	// CompanyBalanceSummary returns the full-history current balance of every
	// active method of a company.
	CompanyBalanceSummary(ctx context.Context, companyID string) ([]domain.MethodBalance, error)

	// ListEntries returns a page of raw entries for a method, ascending by
	// date, with an opaque cursor token.
	ListEntries(ctx context.Context, companyID, methodID string, pageToken string, limit int) ([]domain.LedgerEntry, string, error)
}

// LedgerWriterSvc defines the mutation side of the method ledger engine.
type LedgerWriterSvc interface {
	// MaterializeMonth ensures one entry exists for every calendar day of the
	// month, creating zero-valued unlocked rows for missing days. Idempotent.
	MaterializeMonth(ctx context.Context, companyID, methodID string, year int, month time.Month) (*domain.MaterializationResult, error)

	// UpdateEntryFields applies a partial update to an entry's raw fields,
	// gated by the entry's lock flag.
	UpdateEntryFields(ctx context.Context, companyID, entryID string, req dto.UpdateEntryRequest, updaterUserID string) (*domain.LedgerEntry, error)

	// ToggleEntryLock flips the lock flag. Permitted regardless of the current
	// lock state; locking gates only the other fields.
	ToggleEntryLock(ctx context.Context, companyID, entryID string, updaterUserID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger engine service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
