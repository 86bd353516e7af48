package services

import (
	"timekeeper/internal/config"
	"timekeeper/internal/repository/sqlite"
)

// NewServiceContainer wires all services over a shared repository, config,
// and clock. A nil clock means the system clock.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, clock Clock) *ServiceContainer {
	return &ServiceContainer{
		Timer:     NewTimerService(repo, cfg, clock),
		Entries:   NewEntryService(repo, cfg, clock),
		Reporting: NewReportingService(repo, cfg),
		Labels:    NewLabelService(repo, cfg),
	}
}
