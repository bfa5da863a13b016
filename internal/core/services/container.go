package services

import (
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
)

// NewServiceContainer wires the service layer from the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	journalSvc := NewJournalService(repos.JournalRepo, accountSvc)
	reportingSvc := NewReportingService(repos.ReportingRepo, repos.AccountRepo)
	settingsSvc := NewSettingsService(repos.SettingsRepo, repos.AccountRepo)
	postingSvc := NewPostingAdapterService(journalSvc, repos.SettingsRepo)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Journal:   journalSvc,
		Reporting: reportingSvc,
		Posting:   postingSvc,
		Settings:  settingsSvc,
	}
}
