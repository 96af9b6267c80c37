package services

import (
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// tracker may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sessions portssvc.SessionStore, tracker portssvc.EventTracker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Sessions: sessions}

	// Employee service first since the workflow resolves teams through it
	container.Employee = NewEmployeeService(repos.EmployeeRepo, WithSessionRevocation(sessions))
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Draft = NewDraftService(repos.DraftRepo, repos.CategoryRepo)

	workflowOpts := []WorkflowOption{}
	authOpts := []AuthServiceOption{}
	if tracker != nil {
		workflowOpts = append(workflowOpts, WithEventTracker(tracker))
		authOpts = append(authOpts, WithAuthEventTracker(tracker))
	}
	container.Workflow = NewWorkflowService(repos.WorkflowRepo, container.Employee, workflowOpts...)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	container.Auth = NewAuthService(repos.EmployeeRepo, sessions, TokenParamsFromConfig(cfg), authOpts...)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
