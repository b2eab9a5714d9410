package repositories

import (
	"context"

	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
)

// MethodReader defines read operations for method (revenue channel) data
type MethodReader interface {
	// FindMethodByID retrieves a specific method by its ID.
	FindMethodByID(ctx context.Context, methodID string) (*domain.Method, error)

	// ListMethods retrieves all methods belonging to a company.
	ListMethods(ctx context.Context, companyID string) ([]domain.Method, error)
}

// MethodWriter defines write operations for method data
type MethodWriter interface {
	// SaveMethod persists a new method.
	SaveMethod(ctx context.Context, method domain.Method) error

	// UpdateMethod persists changes to an existing method.
	UpdateMethod(ctx context.Context, method domain.Method) error
}

// MethodRepositoryFacade combines all method-related repository interfaces
type MethodRepositoryFacade interface {
	MethodReader
	MethodWriter
}
