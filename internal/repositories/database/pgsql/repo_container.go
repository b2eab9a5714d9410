package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fleetops/fleet_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full set of pgsql-backed repositories from
// a single connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MethodRepo: newPgxMethodRepository(pool),
		EntryRepo:  newPgxEntryRepository(pool),
	}
}
