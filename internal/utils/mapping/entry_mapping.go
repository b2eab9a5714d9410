package mapping

import (
	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	"github.com/fleetops/fleet_ledger_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
// The entry date is normalized to UTC midnight so the DATE column never
// carries a time component.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		MethodID:    d.MethodID,
		CompanyID:   d.CompanyID,
		EntryDate:   domain.Day(d.EntryDate),
		Supplement:  d.Supplement,
		Entry:       d.Entry,
		Exit:        d.Exit,
		Payment:     d.Payment,
		Delivery:    d.Delivery,
		Description: d.Description,
		Locked:      d.Locked,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		MethodID:    m.MethodID,
		CompanyID:   m.CompanyID,
		EntryDate:   domain.Day(m.EntryDate),
		Supplement:  m.Supplement,
		Entry:       m.Entry,
		Exit:        m.Exit,
		Payment:     m.Payment,
		Delivery:    m.Delivery,
		Description: m.Description,
		Locked:      m.Locked,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
