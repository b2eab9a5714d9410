package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetops/fleet_ledger_app/internal/apperrors"
	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_ledger_app/internal/core/ports/services"
	"github.com/fleetops/fleet_ledger_app/internal/dto"
	"github.com/fleetops/fleet_ledger_app/internal/middleware"
	"github.com/fleetops/fleet_ledger_app/internal/utils"
	"github.com/fleetops/fleet_ledger_app/internal/utils/accounting"
	"github.com/fleetops/fleet_ledger_app/internal/utils/pagination"
)

var (
	// ErrEntryLocked is returned when a field mutation targets a locked entry.
	// This is a local validation failure raised before any storage call.
	ErrEntryLocked = errors.New("entry is locked and cannot be edited")

	// ErrMethodInactive is returned when materialization targets an inactive
	// method. Inactive methods keep their historical entries readable.
	ErrMethodInactive = errors.New("method is inactive")

	// ErrEmptyUpdate is returned when an entry update changes nothing.
	ErrEmptyUpdate = errors.New("no fields to update")
)

const defaultEntryPageSize = 31

// ledgerService is the method ledger engine: month materialization, the
// balance fold, the edit-lock gate and period aggregation. The fold itself is
// pure (see utils/accounting); this service wires it to the repositories.
//
// Concurrency: single-row creates keyed by (method, date) rely on the store's
// unique constraint as the only serialization point. All blocking paths take
// ctx; a superseded pass (user switched method or month) is abandoned through
// context cancellation rather than merged with fresher state.
type ledgerService struct {
	methodRepo portsrepo.MethodRepositoryFacade
	entryRepo  portsrepo.EntryRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(methodRepo portsrepo.MethodRepositoryFacade, entryRepo portsrepo.EntryRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		methodRepo: methodRepo,
		entryRepo:  entryRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) getMethod(ctx context.Context, companyID, methodID string) (*domain.Method, error) {
	method, err := s.methodRepo.FindMethodByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method.CompanyID != companyID {
		// Opaque tenancy: foreign methods look like missing ones.
		return nil, apperrors.ErrNotFound
	}
	return method, nil
}

// MaterializeMonth guarantees a contiguous set of entry rows for every
// calendar day of (year, month), creating zero-valued unlocked rows for the
// missing ones. Re-invoking after a successful run performs no creations.
//
// A duplicate-key rejection from the store is the benign signature of a
// concurrent pass and counts as an existing day. Any other per-day failure is
// logged and reported in the result without aborting the batch; the day stays
// missing and is retried by the next pass.
func (s *ledgerService) MaterializeMonth(ctx context.Context, companyID, methodID string, year int, month time.Month) (*domain.MaterializationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	method, err := s.getMethod(ctx, companyID, methodID)
	if err != nil {
		return nil, err
	}
	if !method.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrMethodInactive, methodID)
	}

	from, to := accounting.MonthRange(year, month)
	existing, err := s.entryRepo.ListEntriesByMethodInRange(ctx, methodID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for %d-%02d: %w", year, month, err)
	}

	present := make(map[time.Time]struct{}, len(existing))
	for _, entry := range existing {
		present[domain.Day(entry.EntryDate)] = struct{}{}
	}

	result := &domain.MaterializationResult{}
	now := time.Now().UTC()
	for _, day := range accounting.MonthDays(year, month) {
		if err := ctx.Err(); err != nil {
			// Superseded or cancelled pass: stop without merging stale state.
			return nil, err
		}
		if _, ok := present[day]; ok {
			result.Existing = append(result.Existing, day)
			continue
		}

		entry := domain.LedgerEntry{
			EntryID:     uuid.NewString(),
			MethodID:    methodID,
			CompanyID:   companyID,
			EntryDate:   day,
			Supplement:  decimal.Zero,
			Entry:       decimal.Zero,
			Exit:        decimal.Zero,
			Payment:     decimal.Zero,
			Delivery:    decimal.Zero,
			Description: "",
			Locked:      false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     "materializer",
				LastUpdatedAt: now,
				LastUpdatedBy: "materializer",
			},
		}

		err := s.entryRepo.SaveEntry(ctx, entry)
		switch {
		case err == nil:
			result.Created = append(result.Created, day)
		case errors.Is(err, apperrors.ErrDuplicate):
			// Concurrent pass won the insert race for this day.
			result.Existing = append(result.Existing, day)
		default:
			logger.Warn("Failed to materialize day",
				slog.String("method_id", methodID),
				slog.String("date", day.Format("2006-01-02")),
				slog.String("error", err.Error()))
			result.Failed = append(result.Failed, day)
		}
	}

	return result, nil
}

// GetMonthLedger materializes the month, then folds and aggregates it.
// Period mode: the fold is seeded with the method's static opening balance,
// never the previous month's close.
func (s *ledgerService) GetMonthLedger(ctx context.Context, companyID, methodID string, year int, month time.Month) (*domain.LedgerView, error) {
	if _, err := s.MaterializeMonth(ctx, companyID, methodID, year, month); err != nil {
		// Inactive methods still get their historical month folded.
		if !errors.Is(err, ErrMethodInactive) {
			return nil, err
		}
	}

	from, to := accounting.MonthRange(year, month)
	return s.ComputePeriod(ctx, companyID, methodID, from, to)
}

// ComputePeriod folds the entries within [from, to] and aggregates totals.
// Each period view independently re-derives its running total from the
// method's static opening balance; deliberate, preserved behavior.
func (s *ledgerService) ComputePeriod(ctx context.Context, companyID, methodID string, from, to time.Time) (*domain.LedgerView, error) {
	method, err := s.getMethod(ctx, companyID, methodID)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end %s precedes start %s", apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	entries, err := s.entryRepo.ListEntriesByMethodInRange(ctx, methodID, domain.Day(from), domain.Day(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for period: %w", err)
	}

	rows := accounting.FoldEntries(*method, entries)
	return &domain.LedgerView{
		Rows:   rows,
		Totals: accounting.ComputeTotals(*method, rows),
	}, nil
}

// ComputeCurrentBalance folds the full entry history of the method and
// returns the final balance (full-history mode, same recurrence and seed as
// the period fold).
func (s *ledgerService) ComputeCurrentBalance(ctx context.Context, companyID, methodID string) (decimal.Decimal, error) {
	method, err := s.getMethod(ctx, companyID, methodID)
	if err != nil {
		return decimal.Zero, err
	}

	entries, err := s.entryRepo.ListEntriesByMethod(ctx, methodID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list entries for balance: %w", err)
	}

	return accounting.CurrentBalance(*method, entries), nil
}

// CompanyBalanceSummary derives the current balance of every active method of
// the company for dashboard summaries. A failure on one method fails the
// summary; partial dashboards would silently misreport the fleet's cash.
func (s *ledgerService) CompanyBalanceSummary(ctx context.Context, companyID string) ([]domain.MethodBalance, error) {
	methods, err := s.methodRepo.ListMethods(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list methods: %w", err)
	}

	summary := make([]domain.MethodBalance, 0, len(methods))
	for _, method := range methods {
		if !method.IsActive() {
			continue
		}
		entries, err := s.entryRepo.ListEntriesByMethod(ctx, method.MethodID)
		if err != nil {
			return nil, fmt.Errorf("failed to list entries for method %s: %w", method.MethodID, err)
		}
		summary = append(summary, domain.MethodBalance{
			Method:  method,
			Balance: accounting.CurrentBalance(method, entries),
		})
	}
	return summary, nil
}

// ListEntries returns a page of raw entries ascending by date with an opaque
// date-based cursor.
func (s *ledgerService) ListEntries(ctx context.Context, companyID, methodID string, pageToken string, limit int) ([]domain.LedgerEntry, string, error) {
	if _, err := s.getMethod(ctx, companyID, methodID); err != nil {
		return nil, "", err
	}

	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	after := time.Time{}
	if pageToken != "" {
		var err error
		after, err = pagination.DecodeDateToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}

	entries, err := s.entryRepo.ListEntriesByMethodPage(ctx, methodID, after, limit)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list entries: %w", err)
	}

	nextToken := ""
	if len(entries) == limit {
		nextToken = pagination.EncodeDateToken(entries[len(entries)-1].EntryDate)
	}
	return entries, nextToken, nil
}

func (s *ledgerService) getEntry(ctx context.Context, companyID, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// UpdateEntryFields applies a partial update to an entry's raw fields after
// the edit-lock gate. Amount strings are leniently coerced (non-numeric
// becomes 0, the documented input policy). The gate rejects locked entries
// before any storage call is made.
func (s *ledgerService) UpdateEntryFields(ctx context.Context, companyID, entryID string, req dto.UpdateEntryRequest, updaterUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Empty() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyUpdate.Error())
	}

	entry, err := s.getEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.CanEdit() {
		return nil, fmt.Errorf("%w: %s", ErrEntryLocked, entryID)
	}

	for _, pair := range []struct {
		src *string
		dst *decimal.Decimal
	}{
		{req.Supplement, &entry.Supplement},
		{req.Entry, &entry.Entry},
		{req.Exit, &entry.Exit},
		{req.Payment, &entry.Payment},
		{req.Delivery, &entry.Delivery},
	} {
		if pair.src != nil {
			*pair.dst = utils.LenientDecimal(*pair.src)
		}
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = updaterUserID

	if err := s.entryRepo.UpdateEntryFields(ctx, *entry); err != nil {
		logger.Error("Failed to update entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return entry, nil
}

// ToggleEntryLock flips the lock flag. Locking and unlocking are both
// permitted at any time; the lock gates only the other fields.
func (s *ledgerService) ToggleEntryLock(ctx context.Context, companyID, entryID string, updaterUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.getEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Locked = !entry.Locked
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = updaterUserID

	if err := s.entryRepo.UpdateEntryFields(ctx, *entry); err != nil {
		logger.Error("Failed to toggle entry lock", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to toggle entry lock: %w", err)
	}

	return entry, nil
}
