package dto

import (
	"time"

	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMethodRequest defines the data needed to create a new revenue channel.
// Commission rates are percentages in [0,100]; range checks live in the
// service since validator tags cannot compare decimal.Decimal values.
type CreateMethodRequest struct {
	Name                   string          `json:"name" binding:"required"`
	EntryCommissionRate    decimal.Decimal `json:"entryCommissionRate"`
	ExitCommissionRate     decimal.Decimal `json:"exitCommissionRate"`
	DeliveryCommissionRate decimal.Decimal `json:"deliveryCommissionRate"`
	OpeningBalance         decimal.Decimal `json:"openingBalance"`
	Status                 string          `json:"status" binding:"omitempty,methodstatus"`
}

// UpdateMethodRequest defines the fields of a method that may be changed.
// Nil fields are left untouched.
type UpdateMethodRequest struct {
	Name                   *string          `json:"name,omitempty"`
	EntryCommissionRate    *decimal.Decimal `json:"entryCommissionRate,omitempty"`
	ExitCommissionRate     *decimal.Decimal `json:"exitCommissionRate,omitempty"`
	DeliveryCommissionRate *decimal.Decimal `json:"deliveryCommissionRate,omitempty"`
	OpeningBalance         *decimal.Decimal `json:"openingBalance,omitempty"`
	Status                 *string          `json:"status,omitempty" binding:"omitempty,methodstatus"`
}

// MethodResponse defines the data returned for a method.
type MethodResponse struct {
	MethodID               string          `json:"methodID"`
	CompanyID              string          `json:"companyID"`
	Name                   string          `json:"name"`
	EntryCommissionRate    decimal.Decimal `json:"entryCommissionRate"`
	ExitCommissionRate     decimal.Decimal `json:"exitCommissionRate"`
	DeliveryCommissionRate decimal.Decimal `json:"deliveryCommissionRate"`
	OpeningBalance         decimal.Decimal `json:"openingBalance"`
	Status                 string          `json:"status"`
	CreatedAt              time.Time       `json:"createdAt"`
	LastUpdatedAt          time.Time       `json:"lastUpdatedAt"`
}

// ToMethodResponse converts a domain.Method to a MethodResponse DTO
func ToMethodResponse(m *domain.Method) MethodResponse {
	return MethodResponse{
		MethodID:               m.MethodID,
		CompanyID:              m.CompanyID,
		Name:                   m.Name,
		EntryCommissionRate:    m.EntryCommissionRate,
		ExitCommissionRate:     m.ExitCommissionRate,
		DeliveryCommissionRate: m.DeliveryCommissionRate,
		OpeningBalance:         m.OpeningBalance,
		Status:                 string(m.Status),
		CreatedAt:              m.CreatedAt,
		LastUpdatedAt:          m.LastUpdatedAt,
	}
}

// ToListMethodResponse converts a slice of domain Methods to MethodResponse DTOs
func ToListMethodResponse(methods []domain.Method) []MethodResponse {
	res := make([]MethodResponse, len(methods))
	for i := range methods {
		res[i] = ToMethodResponse(&methods[i])
	}
	return res
}
