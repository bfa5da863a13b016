package services

// ServiceContainer bundles the service facades handed to the HTTP and worker
// layers at startup.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Reporting ReportingSvcFacade
	Posting   PostingSvcFacade
	Settings  SettingsSvcFacade
}
