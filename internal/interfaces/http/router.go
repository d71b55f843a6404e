package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/report"
	"github.com/jhoicas/crm-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	CompanyStats   *analytics.CompanyStatsUseCase
	CompanyFileUC  *usecase.CompanyFileUseCase // opcional: sin almacenamiento no se registran las rutas de archivos
	ContactUC      *usecase.ContactUseCase
	ConsultationUC *usecase.ConsultationUseCase
	DocumentUC     *usecase.DocumentUseCase
	ProductUC      *usecase.ProductUseCase
	RndUC          *usecase.RndUseCase
	RndOrgUC       *usecase.RndOrgUseCase
	UserUC         *usecase.UserUseCase
	LoginLogUC     *usecase.LoginLogUseCase
	MemoUC         *usecase.MemoUseCase
	TodoUC         *usecase.TodoUseCase
	NotificationUC *usecase.NotificationUseCase
	DashboardUC    *analytics.DashboardUseCase
	ReportUC       *report.ReportUseCase
	AuthUC         *auth.AuthUseCase
	Auth           AuthConfig
}

// Router registra las rutas de la API.
// Las rutas estáticas se registran antes que las de parámetro del mismo grupo.
// Los ids de ruta llevan la restricción <guid>: un id mal formado no casa con
// ninguna ruta y termina en el 404 final.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.Auth)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Auth)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/refresh", requireAuth, authHandler.Refresh)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Rutas protegidas (Bearer o cookie de sesión)
	protected := api.Group("", requireAuth)

	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.CompanyStats, deps.CompanyFileUC)
	companies := protected.Group("/companies")
	if deps.CompanyFileUC != nil {
		companies.Get("/files/:fileId<guid>/url", companyHandler.FileURL)
		companies.Delete("/files/:fileId<guid>", companyHandler.DeleteFile)
		companies.Get("/:id<guid>/files", companyHandler.ListFiles)
		companies.Post("/:id<guid>/files", companyHandler.UploadFile)
	}
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id<guid>/stats", companyHandler.Stats)
	companies.Get("/:id<guid>", companyHandler.GetByID)
	companies.Patch("/:id<guid>", companyHandler.Update)
	companies.Delete("/:id<guid>", companyHandler.Delete)

	contactHandler := NewContactHandler(deps.ContactUC)
	contacts := protected.Group("/contacts")
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id<guid>", contactHandler.GetByID)
	contacts.Patch("/:id<guid>/resign", contactHandler.Resign)
	contacts.Patch("/:id<guid>", contactHandler.Update)
	contacts.Delete("/:id<guid>", contactHandler.Delete)

	consultationHandler := NewConsultationHandler(deps.ConsultationUC)
	consultations := protected.Group("/consultations")
	consultations.Get("/recent", consultationHandler.Recent)
	consultations.Get("/follow-ups", consultationHandler.FollowUps)
	consultations.Get("/", consultationHandler.List)
	consultations.Post("/", consultationHandler.Create)
	consultations.Get("/:id<guid>", consultationHandler.GetByID)
	consultations.Patch("/:id<guid>", consultationHandler.Update)
	consultations.Delete("/:id<guid>", consultationHandler.Delete)

	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents := protected.Group("/documents")
	documents.Get("/summary", documentHandler.Summary)
	documents.Get("/by-consultation/:consultationId<guid>", documentHandler.ByConsultation)
	documents.Get("/", documentHandler.List)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id<guid>/pdf", documentHandler.PDF)
	documents.Get("/:id<guid>", documentHandler.GetByID)
	documents.Patch("/:id<guid>/status", documentHandler.UpdateStatus)
	documents.Patch("/:id<guid>", documentHandler.Update)
	documents.Delete("/:id<guid>", documentHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/price-history", productHandler.PriceHistory)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id<guid>", productHandler.GetByID)
	products.Patch("/:id<guid>", productHandler.Update)
	products.Delete("/:id<guid>", productHandler.Delete)

	rndHandler := NewRndHandler(deps.RndUC)
	rnds := protected.Group("/rnds")
	rnds.Patch("/consultations/:cid<guid>", rndHandler.UpdateConsultation)
	rnds.Delete("/consultations/:cid<guid>", rndHandler.DeleteConsultation)
	rnds.Get("/", rndHandler.List)
	rnds.Post("/", rndHandler.Create)
	rnds.Get("/:id<guid>/consultations", rndHandler.ListConsultations)
	rnds.Post("/:id<guid>/consultations", rndHandler.CreateConsultation)
	rnds.Get("/:id<guid>", rndHandler.GetByID)
	rnds.Patch("/:id<guid>", rndHandler.Update)
	rnds.Delete("/:id<guid>", rndHandler.Delete)

	rndOrgHandler := NewRndOrgHandler(deps.RndOrgUC)
	rndOrgs := protected.Group("/rnd-orgs")
	rndOrgs.Get("/", rndOrgHandler.List)
	rndOrgs.Post("/", rndOrgHandler.Create)
	rndOrgs.Get("/:id<guid>", rndOrgHandler.GetByID)
	rndOrgs.Put("/:id<guid>", rndOrgHandler.Replace)
	rndOrgs.Delete("/:id<guid>", rndOrgHandler.Delete)

	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC, deps.LoginLogUC)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", RequireRole("admin"), userHandler.Create)
	users.Get("/:id<guid>", userHandler.GetByID)
	users.Patch("/:id<guid>/password", userHandler.ChangePassword)
	users.Patch("/:id<guid>", userHandler.Update)
	protected.Get("/login-logs", RequireRole("admin"), userHandler.LoginLogs)

	personalHandler := NewPersonalHandler(deps.MemoUC, deps.TodoUC, deps.NotificationUC)
	protected.Get("/memos/me", personalHandler.GetMemo)
	protected.Put("/memos/me", personalHandler.SaveMemo)

	todos := protected.Group("/todos")
	todos.Put("/reorder", personalHandler.ReorderTodos)
	todos.Get("/", personalHandler.ListTodos)
	todos.Post("/", personalHandler.CreateTodo)
	todos.Patch("/:id<guid>", personalHandler.UpdateTodo)
	todos.Delete("/:id<guid>", personalHandler.DeleteTodo)

	notifications := protected.Group("/notifications")
	notifications.Patch("/read-all", personalHandler.MarkAllRead)
	notifications.Get("/", personalHandler.ListNotifications)
	notifications.Patch("/:id<guid>/read", personalHandler.MarkRead)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/performance/companies", reportHandler.Companies)
	reports.Get("/performance", reportHandler.Performance)
	reports.Get("/industry-average", reportHandler.IndustryAverage)
	reports.Get("/daily", reportHandler.Daily)

	app.Use(func(c *fiber.Ctx) error {
		return respond(c, fiber.StatusNotFound, CodeNotFound, "데이터를 찾을 수 없습니다")
	})
}
