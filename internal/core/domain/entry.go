package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents one calendar day's raw financial activity for one method.
//
// The pair (MethodID, EntryDate) is unique: exactly one entry per method per
// calendar day. EntryDate is a pure calendar day, normalized to UTC midnight.
//
// Commission and balance are deliberately absent here: they are derived by the
// fold on every read (see FoldedEntry) and never stored or trusted as input.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`   // Primary Key (UUID)
	MethodID    string          `json:"methodID"`  // FK -> methods.method_id
	CompanyID   string          `json:"companyID"` // Opaque tenant identifier
	EntryDate   time.Time       `json:"entryDate"` // Calendar day, UTC midnight
	Supplement  decimal.Decimal `json:"supplement"`
	Entry       decimal.Decimal `json:"entry"`
	Exit        decimal.Decimal `json:"exit"`
	Payment     decimal.Decimal `json:"payment"`
	Delivery    decimal.Decimal `json:"delivery"`
	Description string          `json:"description"`
	Locked      bool            `json:"locked"`
	AuditFields
}

// CanEdit reports whether the entry's raw fields may be mutated.
// The lock flag gates every raw field but is itself always togglable.
func (e LedgerEntry) CanEdit() bool {
	return !e.Locked
}

// Day normalizes a timestamp to the calendar day it falls on, UTC midnight.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
