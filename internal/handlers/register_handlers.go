package handlers

import (
	"fmt"

	"github.com/SscSPs/expense_tracker/cmd/docs"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/core/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	container *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return err
		}
	}

	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	if err := registerAuthRoutes(r, cfg, container); err != nil {
		return err
	}

	setupAPIV1Routes(r, cfg, container, posthogClient)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// registerAuthRoutes sets up the public login routes. Both login paths share the rate limiter.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, container *portssvc.ServiceContainer) error {
	ipLimiter, err := middleware.NewIPLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limiter: %w", err)
	}
	limit := middleware.RateLimit(ipLimiter)

	h := NewAuthHandler(container.Auth)
	g := NewGoogleOAuthHandler(container.GoogleOAuth, container.Auth)

	auth := r.Group("/auth")
	{
		auth.POST("/login", limit, h.Login)
		auth.GET("/google/login-url", g.LoginURL)
		auth.POST("/google/exchange-code", limit, g.ExchangeCodeGoogle)
	}
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(services.TokenParamsFromConfig(cfg), service.Sessions),
		middleware.PosthogMiddleware(posthogClient),
	)

	authHandler := NewAuthHandler(service.Auth)
	v1.POST("/auth/logout", authHandler.Logout)

	registerDraftRoutes(v1, service.Draft, service.Workflow)
	registerRequestRoutes(v1, service.Workflow)
	registerFinanceRoutes(v1, service.Workflow, service.Reporting)
	registerCategoryRoutes(v1, service.Category)
	registerEmployeeRoutes(v1, service.Employee, authHandler)
}

func registerDraftRoutes(rg *gin.RouterGroup, draftService portssvc.DraftSvcFacade, workflowService portssvc.WorkflowSvcFacade) {
	h := newDraftHandler(draftService, workflowService)

	drafts := rg.Group("/drafts", middleware.RequireRoles(domain.RoleEmployee, domain.RoleManager))
	{
		drafts.POST("", h.createDraft)
		drafts.GET("", h.listDrafts)
		drafts.GET("/:draftID", h.getDraft)
		drafts.PUT("/:draftID", h.updateDraft)
		drafts.DELETE("/:draftID", h.deleteDraft)
		drafts.POST("/:draftID/submit", h.submitDraft)
	}
}

func registerRequestRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := newRequestHandler(workflowService)
	managerOnly := middleware.RequireRoles(domain.RoleManager)

	requests := rg.Group("/requests")
	{
		requests.GET("", h.listRequests)
		requests.GET("/team-pending", managerOnly, h.listTeamPending)
		requests.GET("/:requestID", h.getRequest)
		requests.GET("/:requestID/history", h.getHistory)
		requests.POST("/:requestID/approve", managerOnly, h.approveRequest)
		requests.POST("/:requestID/reject", managerOnly, h.rejectRequest)
		requests.POST("/:requestID/resubmit", middleware.RequireRoles(domain.RoleEmployee, domain.RoleManager), h.resubmitRequest)
	}
}

func registerFinanceRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade, reportingService portssvc.ReportingSvc) {
	requests := newRequestHandler(workflowService)
	reports := newReportingHandler(reportingService)

	finance := rg.Group("/finance", middleware.RequireRoles(domain.RoleFinance, domain.RoleAdmin))
	{
		finance.POST("/requests/:requestID/pay", requests.payRequest)
		finance.GET("/reports/monthly", reports.getMonthlySummary)
		finance.GET("/reports/dashboard", reports.getDashboard)
	}
}

func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", adminOnly, h.createCategory)
		categories.PUT("/:categoryID", adminOnly, h.updateCategory)
	}
}

func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade, authHandler *AuthHandler) {
	h := newEmployeeHandler(employeeService)

	rg.GET("/employees/me", h.getMe)

	admin := rg.Group("/admin/employees", middleware.RequireRoles(domain.RoleAdmin))
	{
		admin.GET("", h.listEmployees)
		admin.POST("", h.createEmployee)
		admin.GET("/:employeeID", h.getEmployee)
		admin.PUT("/:employeeID", h.updateEmployee)
		admin.PATCH("/:employeeID/status", h.setEmployeeStatus)
		admin.DELETE("/:employeeID/session", authHandler.ForceLogout)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
