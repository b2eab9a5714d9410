package services

import (
	"context"

	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	"github.com/fleetops/fleet_ledger_app/internal/dto"
)

// MethodReaderSvc defines read operations for method (revenue channel) data
type MethodReaderSvc interface {
	// GetMethodByID retrieves a specific method scoped to a company.
	GetMethodByID(ctx context.Context, companyID string, methodID string) (*domain.Method, error)

	// ListMethods retrieves all methods belonging to a company.
	ListMethods(ctx context.Context, companyID string) ([]domain.Method, error)
}

// MethodWriterSvc defines write operations for method data
type MethodWriterSvc interface {
	// CreateMethod persists a new method.
	CreateMethod(ctx context.Context, companyID string, req dto.CreateMethodRequest, creatorUserID string) (*domain.Method, error)

	// UpdateMethod applies a partial update to an existing method.
	UpdateMethod(ctx context.Context, companyID string, methodID string, req dto.UpdateMethodRequest, updaterUserID string) (*domain.Method, error)
}

// MethodSvcFacade combines all method-related service interfaces
type MethodSvcFacade interface {
	MethodReaderSvc
	MethodWriterSvc
}
