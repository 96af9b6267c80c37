package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Workflow    WorkflowSvcFacade
	Draft       DraftSvcFacade
	Category    CategorySvcFacade
	Employee    EmployeeSvcFacade
	Reporting   ReportingSvc
	Auth        AuthSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Sessions    SessionStore
}

// EventTracker receives product analytics events. Tracking never fails the caller.
type EventTracker interface {
	Track(distinctID string, event string, properties map[string]any)
}
