package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	WorkflowRepo  WorkflowRepositoryFacade
	DraftRepo     DraftRepositoryFacade
	EmployeeRepo  EmployeeRepositoryFacade
	CategoryRepo  CategoryRepositoryFacade
	ReportingRepo ReportingRepository
}
