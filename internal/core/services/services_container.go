package services

import (
	portsrepo "github.com/fleetops/fleet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Method = NewMethodService(repos.MethodRepo)
	container.Ledger = NewLedgerService(repos.MethodRepo, repos.EntryRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MethodSvcFacade = (*methodService)(nil)
	_ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
)
