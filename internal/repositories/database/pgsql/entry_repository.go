package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetops/fleet_ledger_app/internal/apperrors"
	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_ledger_app/internal/core/ports/repositories"
	"github.com/fleetops/fleet_ledger_app/internal/models"
	"github.com/fleetops/fleet_ledger_app/internal/utils/mapping"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for ledger entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, method_id, company_id, entry_date, supplement, entry, exit, payment, delivery, description, locked, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var e models.LedgerEntry
	err := row.Scan(
		&e.EntryID,
		&e.MethodID,
		&e.CompanyID,
		&e.EntryDate,
		&e.Supplement,
		&e.Entry,
		&e.Exit,
		&e.Payment,
		&e.Delivery,
		&e.Description,
		&e.Locked,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LedgerEntry, error) {
		return scanEntry(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.LedgerEntry{}, nil
		}
		return nil, fmt.Errorf("failed to scan entries: %w", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}

// SaveEntry inserts a new entry. The UNIQUE (method_id, entry_date) constraint
// is the serialization point for concurrent materialization passes; a
// violation surfaces as apperrors.ErrDuplicate so callers can treat the race
// as benign.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	modelEntry := mapping.ToModelLedgerEntry(entry)

	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.MethodID,
		modelEntry.CompanyID,
		modelEntry.EntryDate,
		modelEntry.Supplement,
		modelEntry.Entry,
		modelEntry.Exit,
		modelEntry.Payment,
		modelEntry.Delivery,
		modelEntry.Description,
		modelEntry.Locked,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on (method_id, entry_date)
				return fmt.Errorf("%w: entry for method %s on %s already exists",
					apperrors.ErrDuplicate, modelEntry.MethodID, modelEntry.EntryDate.Format("2006-01-02"))
			}
		}
		return fmt.Errorf("failed to save entry %s: %w", modelEntry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE entry_id = $1;
	`
	modelEntry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	domainEntry := mapping.ToDomainLedgerEntry(modelEntry)
	return &domainEntry, nil
}

// ListEntriesByMethod retrieves all entries of a method, ascending by date.
func (r *PgxEntryRepository) ListEntriesByMethod(ctx context.Context, methodID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE method_id = $1
		ORDER BY entry_date;
	`
	rows, err := r.Pool.Query(ctx, query, methodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListEntriesByMethodInRange retrieves entries with from <= entry_date <= to,
// ascending by date.
func (r *PgxEntryRepository) ListEntriesByMethodInRange(ctx context.Context, methodID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE method_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date;
	`
	rows, err := r.Pool.Query(ctx, query, methodID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries in range: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListEntriesByMethodPage retrieves up to limit entries strictly after the
// cursor date, ascending by date.
func (r *PgxEntryRepository) ListEntriesByMethodPage(ctx context.Context, methodID string, after time.Time, limit int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE method_id = $1 AND entry_date > $2
		ORDER BY entry_date
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, methodID, after, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry page: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// UpdateEntryFields persists the mutable fields of an entry.
func (r *PgxEntryRepository) UpdateEntryFields(ctx context.Context, entry domain.LedgerEntry) error {
	modelEntry := mapping.ToModelLedgerEntry(entry)

	query := `
		UPDATE ledger_entries SET
			supplement = $2,
			entry = $3,
			exit = $4,
			payment = $5,
			delivery = $6,
			description = $7,
			locked = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.Supplement,
		modelEntry.Entry,
		modelEntry.Exit,
		modelEntry.Payment,
		modelEntry.Delivery,
		modelEntry.Description,
		modelEntry.Locked,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", modelEntry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
