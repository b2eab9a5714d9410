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
)

// ErrRateOutOfRange is returned when a commission rate falls outside [0,100].
var ErrRateOutOfRange = errors.New("commission rate must be between 0 and 100")

var (
	ratePercentMin = decimal.Zero
	ratePercentMax = decimal.NewFromInt(100)
)

// methodService provides registry operations for revenue channels.
// The ledger engine treats methods produced here as read-only input within a
// computation pass.
type methodService struct {
	methodRepo portsrepo.MethodRepositoryFacade
}

// NewMethodService creates a new MethodService.
func NewMethodService(methodRepo portsrepo.MethodRepositoryFacade) portssvc.MethodSvcFacade {
	return &methodService{methodRepo: methodRepo}
}

// Ensure methodService implements the portssvc.MethodSvcFacade interface
var _ portssvc.MethodSvcFacade = (*methodService)(nil)

func validateRate(rate decimal.Decimal) error {
	if rate.LessThan(ratePercentMin) || rate.GreaterThan(ratePercentMax) {
		return fmt.Errorf("%w: got %s", ErrRateOutOfRange, rate.String())
	}
	return nil
}

// CreateMethod validates and persists a new revenue channel.
func (s *methodService) CreateMethod(ctx context.Context, companyID string, req dto.CreateMethodRequest, creatorUserID string) (*domain.Method, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, rate := range []decimal.Decimal{req.EntryCommissionRate, req.ExitCommissionRate, req.DeliveryCommissionRate} {
		if err := validateRate(rate); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}

	status := domain.MethodActive
	if req.Status != "" {
		status = domain.MethodStatus(req.Status)
	}

	now := time.Now().UTC()
	method := domain.Method{
		MethodID:               uuid.NewString(),
		CompanyID:              companyID,
		Name:                   req.Name,
		EntryCommissionRate:    req.EntryCommissionRate,
		ExitCommissionRate:     req.ExitCommissionRate,
		DeliveryCommissionRate: req.DeliveryCommissionRate,
		OpeningBalance:         req.OpeningBalance,
		Status:                 status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.methodRepo.SaveMethod(ctx, method); err != nil {
		logger.Error("Failed to save method", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create method: %w", err)
	}

	return &method, nil
}

// GetMethodByID retrieves a method and enforces the opaque company scope:
// a method of another company is reported as not found.
func (s *methodService) GetMethodByID(ctx context.Context, companyID string, methodID string) (*domain.Method, error) {
	method, err := s.methodRepo.FindMethodByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return method, nil
}

// ListMethods retrieves all methods belonging to a company.
func (s *methodService) ListMethods(ctx context.Context, companyID string) ([]domain.Method, error) {
	methods, err := s.methodRepo.ListMethods(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list methods: %w", err)
	}
	if methods == nil {
		return []domain.Method{}, nil
	}
	return methods, nil
}

// UpdateMethod applies a partial update to a method's definition.
func (s *methodService) UpdateMethod(ctx context.Context, companyID string, methodID string, req dto.UpdateMethodRequest, updaterUserID string) (*domain.Method, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	method, err := s.GetMethodByID(ctx, companyID, methodID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		method.Name = *req.Name
	}
	for _, pair := range []struct {
		src *decimal.Decimal
		dst *decimal.Decimal
	}{
		{req.EntryCommissionRate, &method.EntryCommissionRate},
		{req.ExitCommissionRate, &method.ExitCommissionRate},
		{req.DeliveryCommissionRate, &method.DeliveryCommissionRate},
	} {
		if pair.src == nil {
			continue
		}
		if err := validateRate(*pair.src); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		*pair.dst = *pair.src
	}
	if req.OpeningBalance != nil {
		method.OpeningBalance = *req.OpeningBalance
	}
	if req.Status != nil {
		method.Status = domain.MethodStatus(*req.Status)
	}

	method.LastUpdatedAt = time.Now().UTC()
	method.LastUpdatedBy = updaterUserID

	if err := s.methodRepo.UpdateMethod(ctx, *method); err != nil {
		logger.Error("Failed to update method", slog.String("error", err.Error()), slog.String("method_id", methodID))
		return nil, fmt.Errorf("failed to update method: %w", err)
	}

	return method, nil
}
