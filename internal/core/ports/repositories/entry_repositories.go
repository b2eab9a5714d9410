package repositories

import (
	"context"
	"time"

	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
)

// EntryReader defines read operations for ledger entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByMethod retrieves all entries of a method, ascending by date.
	ListEntriesByMethod(ctx context.Context, methodID string) ([]domain.LedgerEntry, error)

	// ListEntriesByMethodInRange retrieves entries of a method with
	// from <= entry_date <= to, ascending by date.
	ListEntriesByMethodInRange(ctx context.Context, methodID string, from, to time.Time) ([]domain.LedgerEntry, error)

	// ListEntriesByMethodPage retrieves up to limit entries with entry_date
	// strictly after the cursor date, ascending by date.
	ListEntriesByMethodPage(ctx context.Context, methodID string, after time.Time, limit int) ([]domain.LedgerEntry, error)
}

// EntryWriter defines write operations for ledger entry data
type EntryWriter interface {
	// SaveEntry inserts a new entry. Returns apperrors.ErrDuplicate when an
	// entry for (method, date) already exists; the unique key on that pair is
	// the store-side serialization point for concurrent materialization.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntryFields persists the mutable fields (raw amounts, description,
	// lock flag) and audit data of an existing entry.
	UpdateEntryFields(ctx context.Context, entry domain.LedgerEntry) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
