package mapping

import (
	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	"github.com/fleetops/fleet_ledger_app/internal/models"
)

// ToModelMethod converts a domain Method to a model Method
func ToModelMethod(d domain.Method) models.Method {
	return models.Method{
		MethodID:               d.MethodID,
		CompanyID:              d.CompanyID,
		Name:                   d.Name,
		EntryCommissionRate:    d.EntryCommissionRate,
		ExitCommissionRate:     d.ExitCommissionRate,
		DeliveryCommissionRate: d.DeliveryCommissionRate,
		OpeningBalance:         d.OpeningBalance,
		Status:                 models.MethodStatus(d.Status),
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMethod converts a model Method to a domain Method
func ToDomainMethod(m models.Method) domain.Method {
	return domain.Method{
		MethodID:               m.MethodID,
		CompanyID:              m.CompanyID,
		Name:                   m.Name,
		EntryCommissionRate:    m.EntryCommissionRate,
		ExitCommissionRate:     m.ExitCommissionRate,
		DeliveryCommissionRate: m.DeliveryCommissionRate,
		OpeningBalance:         m.OpeningBalance,
		Status:                 domain.MethodStatus(m.Status),
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMethodSlice converts a slice of model Methods to a slice of domain Methods
func ToDomainMethodSlice(ms []models.Method) []domain.Method {
	ds := make([]domain.Method, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMethod(m)
	}
	return ds
}
