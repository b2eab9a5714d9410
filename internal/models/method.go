package models

import (
	"github.com/shopspring/decimal"
)

// MethodStatus defines whether a revenue channel participates in new ledger views.
type MethodStatus string

const (
	MethodActive   MethodStatus = "ACTIVE"
	MethodInactive MethodStatus = "INACTIVE"
)

// Method represents a revenue channel row as persisted.
type Method struct {
	MethodID               string          `db:"method_id"`
	CompanyID              string          `db:"company_id"`
	Name                   string          `db:"name"`
	EntryCommissionRate    decimal.Decimal `db:"entry_commission_rate"`
	ExitCommissionRate     decimal.Decimal `db:"exit_commission_rate"`
	DeliveryCommissionRate decimal.Decimal `db:"delivery_commission_rate"`
	OpeningBalance         decimal.Decimal `db:"opening_balance"`
	Status                 MethodStatus    `db:"status"`
	AuditFields
}
