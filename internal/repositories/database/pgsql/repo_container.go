package pgsql

import (
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WorkflowRepo:  newPgxWorkflowRepository(dbPool),
		DraftRepo:     newPgxDraftRepository(dbPool),
		EmployeeRepo:  newPgxEmployeeRepository(dbPool),
		CategoryRepo:  newPgxCategoryRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
