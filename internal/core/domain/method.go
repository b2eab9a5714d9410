package domain

import (
	"github.com/shopspring/decimal"
)

// MethodStatus defines whether a revenue channel participates in new ledger views.
type MethodStatus string

const (
	MethodActive   MethodStatus = "ACTIVE"
	MethodInactive MethodStatus = "INACTIVE"
)

// Method represents a revenue channel (e.g. a booking platform) within the core domain.
// A method carries its own commission rates and the static opening balance that
// seeds every balance computation. Services treat a method as read-only input
// for the duration of one computation pass.
type Method struct {
	MethodID               string          `json:"methodID"`               // Primary Key (UUID)
	CompanyID              string          `json:"companyID"`              // Opaque tenant identifier, carried through every record
	Name                   string          `json:"name"`                   // User-defined name
	EntryCommissionRate    decimal.Decimal `json:"entryCommissionRate"`    // Percentage, 0-100
	ExitCommissionRate     decimal.Decimal `json:"exitCommissionRate"`     // Percentage, 0-100
	DeliveryCommissionRate decimal.Decimal `json:"deliveryCommissionRate"` // Percentage, 0-100
	OpeningBalance         decimal.Decimal `json:"openingBalance"`         // Signed carry-over seeding the fold
	Status                 MethodStatus    `json:"status"`
	AuditFields
}

// IsActive reports whether the method participates in new materialization.
// Inactive methods keep their historical entries readable.
func (m Method) IsActive() bool {
	return m.Status == MethodActive
}
