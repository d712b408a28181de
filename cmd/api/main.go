package main

import (
	"context"
	"fmt"
	"log"

	common_api "voicelens/internal/common/api"
	"voicelens/internal/config"
	"voicelens/internal/database"
	"voicelens/internal/features/audit"
	"voicelens/internal/features/auth"
	"voicelens/internal/features/billing"
	"voicelens/internal/features/company"
	"voicelens/internal/features/entitlement"
	"voicelens/internal/features/grievance"
	"voicelens/internal/features/report"
	"voicelens/internal/features/system"
	"voicelens/internal/gemini"
	"voicelens/internal/logger"
	"voicelens/internal/middleware"
	"voicelens/pkg/utils"

	_ "voicelens/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for i, route := range routes {
		log.Printf("Setting up route %d: %T\n", i+1, route)
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// StartCacheSweeper runs the grievance cache sweep every minute so stale
// entries never outlive their TTL by more than one tick.
func StartCacheSweeper(lc fx.Lifecycle, grievanceService grievance.GrievanceService, zapLogger *zap.Logger) {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("* * * * *", grievanceService.SweepCache); err != nil {
		zapLogger.Error("failed to schedule cache sweeper", zap.Error(err))
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			<-scheduler.Stop().Done()
			return nil
		},
	})
}

// @title           VoiceLens API
// @version         1.0
// @description     Grievance analytics backend with entitlement-gated AI reports.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Databases
			database.NewPostgresDB,
			database.NewMongoDB,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// LLM client
			gemini.NewClient,

			// Initialize Repository
			auth.NewProfileRepository,
			company.NewCompanyRepository,
			entitlement.NewEntitlementRepository,
			grievance.NewGrievanceRepository,

			// Initialize Services
			audit.NewAuditService,
			auth.NewAuthService,
			company.NewCompanyService,
			entitlement.NewEntitlementService,
			billing.NewBillingService,
			func() *grievance.PointsEngine {
				return grievance.NewPointsEngine(grievance.DefaultPointsScript)
			},
			grievance.NewGrievanceService,
			report.NewGenerator,
			report.NewRenderHub,
			report.NewReportService,

			// Initialize Controller
			auth.NewAuthController,
			company.NewCompanyController,
			grievance.NewGrievanceController,
			billing.NewBillingController,
			report.NewReportController,
			system.NewDebugController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(company.NewCompanyApi),
			AsRoute(grievance.NewGrievanceApi),
			AsRoute(billing.NewBillingApi),
			AsRoute(report.NewReportApi),
			AsRoute(report.NewRenderStreamApi),
			AsRoute(system.NewDebugApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			StartCacheSweeper,
		),
	)

	app.Run()
}
