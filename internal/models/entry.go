package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents one (method, calendar day) row as persisted.
// The table enforces UNIQUE (method_id, entry_date); that constraint is the
// engine's serialization point for concurrent materialization passes.
// Commission and balance have no columns: they are derived on every read.
type LedgerEntry struct {
	EntryID     string          `db:"entry_id"`
	MethodID    string          `db:"method_id"`
	CompanyID   string          `db:"company_id"`
	EntryDate   time.Time       `db:"entry_date"` // DATE column, no time component
	Supplement  decimal.Decimal `db:"supplement"`
	Entry       decimal.Decimal `db:"entry"`
	Exit        decimal.Decimal `db:"exit"`
	Payment     decimal.Decimal `db:"payment"`
	Delivery    decimal.Decimal `db:"delivery"`
	Description string          `db:"description"`
	Locked      bool            `db:"locked"`
	AuditFields
}
