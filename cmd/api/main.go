package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/crm-api/docs"
	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/report"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/crm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/crm-api/internal/interfaces/http"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
	"github.com/swaggo/swag"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	consultationRepo := postgres.NewConsultationRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	rndRepo := postgres.NewRndRepository(pool)
	rndOrgRepo := postgres.NewRndOrgRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	loginLogRepo := postgres.NewLoginLogRepository(pool)
	memoRepo := postgres.NewMemoRepository(pool)
	todoRepo := postgres.NewTodoRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo, contactRepo, txRunner)
	contactUC := usecase.NewContactUseCase(contactRepo, companyRepo, txRunner)
	consultationUC := usecase.NewConsultationUseCase(consultationRepo, contactRepo, txRunner)
	productUC := usecase.NewProductUseCase(productRepo)
	rndUC := usecase.NewRndUseCase(rndRepo, rndOrgRepo, txRunner)
	rndOrgUC := usecase.NewRndOrgUseCase(rndOrgRepo, txRunner)
	userUC := usecase.NewUserUseCase(userRepo)
	loginLogUC := usecase.NewLoginLogUseCase(loginLogRepo)
	memoUC := usecase.NewMemoUseCase(memoRepo)
	todoUC := usecase.NewTodoUseCase(todoRepo, txRunner)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)

	// PDF: 견적서 / 발주서 / 의뢰서
	if cfg.PDF.FontPath == "" {
		log.Warn().Msg("PDF_FONT_PATH vacío: los PDF usarán helvetica")
	}
	documentUC := usecase.NewDocumentUseCase(usecase.DocumentDeps{
		Documents:     documentRepo,
		Consultations: consultationRepo,
		Contacts:      contactRepo,
		Companies:     companyRepo,
		Users:         userRepo,
		PDF:           infrapdf.NewMarotoPDFGenerator(cfg.PDF.FontPath),
		Tx:            txRunner,
	})

	// Adjuntos de empresa: sin almacenamiento configurado no se registran las rutas.
	var companyFileUC *usecase.CompanyFileUseCase
	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3Storage(ctx, cfg.Storage, log)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente de almacenamiento")
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("bucket de almacenamiento")
		}
		companyFileUC = usecase.NewCompanyFileUseCase(
			postgres.NewCompanyFileRepository(pool), companyRepo, s3,
			time.Duration(cfg.Storage.PresignMinutes)*time.Minute,
		)
	} else {
		log.Warn().Msg("almacenamiento deshabilitado: sin rutas de archivos de empresa")
	}
	companyUC.WithFiles(companyFileUC)

	companyStatsUC := appanalytics.NewCompanyStatsUseCase(analyticsRepo, companyRepo, contactRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, consultationUC, documentUC)
	reportUC := report.NewReportUseCase(analyticsRepo, consultationRepo, documentRepo, userRepo)

	authUC := auth.NewAuthUseCase(userRepo, loginLogRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // adjuntos de empresa
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowCredentials: !strings.Contains(cfg.HTTP.AllowedOrigins, "*"),
		ExposeHeaders:    httpRouter.HeaderRefreshedToken,
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sales CRM API",
	}))

	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      companyUC,
		CompanyStats:   companyStatsUC,
		CompanyFileUC:  companyFileUC,
		ContactUC:      contactUC,
		ConsultationUC: consultationUC,
		DocumentUC:     documentUC,
		ProductUC:      productUC,
		RndUC:          rndUC,
		RndOrgUC:       rndOrgUC,
		UserUC:         userUC,
		LoginLogUC:     loginLogUC,
		MemoUC:         memoUC,
		TodoUC:         todoUC,
		NotificationUC: notificationUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		AuthUC:         authUC,
		Auth: httpRouter.AuthConfig{
			Secret:        cfg.JWT.Secret,
			Issuer:        cfg.JWT.Issuer,
			ExpMinutes:    cfg.JWT.Expiration,
			RefreshWindow: time.Duration(cfg.JWT.RefreshWindow) * time.Minute,
			CookieName:    cfg.JWT.CookieName,
			CookieSecure:  cfg.App.Env == "production",
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
