package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetops/fleet_ledger_app/internal/apperrors"
	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_ledger_app/internal/core/ports/repositories"
	"github.com/fleetops/fleet_ledger_app/internal/models"
	"github.com/fleetops/fleet_ledger_app/internal/utils/mapping"
)

type PgxMethodRepository struct {
	BaseRepository
}

// newPgxMethodRepository creates a new repository for method (revenue channel) data.
func newPgxMethodRepository(pool *pgxpool.Pool) portsrepo.MethodRepositoryFacade {
	return &PgxMethodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.MethodRepositoryFacade = (*PgxMethodRepository)(nil)

const methodColumns = `method_id, company_id, name, entry_commission_rate, exit_commission_rate, delivery_commission_rate, opening_balance, status, created_at, created_by, last_updated_at, last_updated_by`

func scanMethod(row pgx.Row) (models.Method, error) {
	var m models.Method
	err := row.Scan(
		&m.MethodID,
		&m.CompanyID,
		&m.Name,
		&m.EntryCommissionRate,
		&m.ExitCommissionRate,
		&m.DeliveryCommissionRate,
		&m.OpeningBalance,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveMethod inserts a new method.
func (r *PgxMethodRepository) SaveMethod(ctx context.Context, method domain.Method) error {
	modelMethod := mapping.ToModelMethod(method)

	query := `
		INSERT INTO methods (` + methodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelMethod.MethodID,
		modelMethod.CompanyID,
		modelMethod.Name,
		modelMethod.EntryCommissionRate,
		modelMethod.ExitCommissionRate,
		modelMethod.DeliveryCommissionRate,
		modelMethod.OpeningBalance,
		modelMethod.Status,
		modelMethod.CreatedAt,
		modelMethod.CreatedBy,
		modelMethod.LastUpdatedAt,
		modelMethod.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: method with ID %s already exists", apperrors.ErrDuplicate, modelMethod.MethodID)
			}
		}
		return fmt.Errorf("failed to save method %s: %w", modelMethod.MethodID, err)
	}
	return nil
}

// FindMethodByID retrieves a method by its ID.
func (r *PgxMethodRepository) FindMethodByID(ctx context.Context, methodID string) (*domain.Method, error) {
	query := `
		SELECT ` + methodColumns + `
		FROM methods
		WHERE method_id = $1;
	`
	modelMethod, err := scanMethod(r.Pool.QueryRow(ctx, query, methodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find method by ID %s: %w", methodID, err)
	}

	domainMethod := mapping.ToDomainMethod(modelMethod)
	return &domainMethod, nil
}

// ListMethods retrieves all methods belonging to a company.
func (r *PgxMethodRepository) ListMethods(ctx context.Context, companyID string) ([]domain.Method, error) {
	query := `
		SELECT ` + methodColumns + `
		FROM methods
		WHERE company_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query methods: %w", err)
	}
	defer rows.Close()

	modelMethods, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Method, error) {
		return scanMethod(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Method{}, nil
		}
		return nil, fmt.Errorf("failed to scan methods: %w", err)
	}

	return mapping.ToDomainMethodSlice(modelMethods), nil
}

// UpdateMethod persists changes to an existing method.
func (r *PgxMethodRepository) UpdateMethod(ctx context.Context, method domain.Method) error {
	modelMethod := mapping.ToModelMethod(method)

	query := `
		UPDATE methods SET
			name = $2,
			entry_commission_rate = $3,
			exit_commission_rate = $4,
			delivery_commission_rate = $5,
			opening_balance = $6,
			status = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE method_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelMethod.MethodID,
		modelMethod.Name,
		modelMethod.EntryCommissionRate,
		modelMethod.ExitCommissionRate,
		modelMethod.DeliveryCommissionRate,
		modelMethod.OpeningBalance,
		modelMethod.Status,
		modelMethod.LastUpdatedAt,
		modelMethod.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update method %s: %w", modelMethod.MethodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
