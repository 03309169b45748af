package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/chooy/admin-console/docs"
	"github.com/chooy/admin-console/internal/api/handler"
	"github.com/chooy/admin-console/internal/api/middleware"
	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
	"github.com/chooy/admin-console/internal/core/service"
	"github.com/chooy/admin-console/internal/infrastructure/config"
	redisstore "github.com/chooy/admin-console/internal/infrastructure/db/redis"
	"github.com/chooy/admin-console/internal/upstream"
)

const loginPath = "/login"

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit repository is injected because its async dispatcher's lifecycle
// belongs to main.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditRepository, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Dependencies ---
	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, upstream.SessionTokenSource{}, log)
	identity := upstream.NewAuthClient(client)
	users := upstream.NewUsersClient(client)
	books := upstream.NewBooksClient(client)
	chapters := upstream.NewChaptersClient(client)
	plans := upstream.NewSubscriptionsClient(client)

	sessions := redisstore.NewSessionStore(rdb, cfg.SessionTTL)
	throttle := redisstore.NewLoginThrottle(rdb, cfg.Throttle.LoginLimit, cfg.Throttle.LoginWindow)

	authService := service.NewAuthService(identity, sessions, throttle, service.BootstrapAccount{
		Email:        cfg.Bootstrap.Email,
		PasswordHash: cfg.Bootstrap.PasswordHash,
	}, cfg.JWTSecret, cfg.SessionTTL, log)
	directoryService := service.NewDirectoryService(users, audit, log)
	catalogService := service.NewCatalogService(upstream.NewCatalog(books, chapters), audit, log)
	planService := service.NewPlanService(plans, audit, log)

	authHandler := handler.NewAuthHandler(authService, log)
	userHandler := handler.NewUserHandler(directoryService, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	planHandler := handler.NewPlanHandler(planService, log)
	auditHandler := handler.NewAuditHandler(audit, log)
	rootHandler := handler.NewRootHandler(authService)

	gate := middleware.SessionGate(authService, loginPath)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	staffOrAdmin := middleware.RequireAnyRole(domain.RoleStaff, domain.RoleAdmin)

	// --- Public surface ---
	e.GET("/", rootHandler.Home)
	e.GET(loginPath, rootHandler.LoginEntry)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Authenticated surface ---
	e.GET("/auth/session", authHandler.Session, gate)

	admin := e.Group("/admin", gate, adminOnly)
	admin.GET("/users", userHandler.ListMembers)
	admin.PUT("/users/:id/role", userHandler.UpdateRole)
	admin.PUT("/users/:id/activation", userHandler.UpdateActivation)
	admin.GET("/staff", userHandler.ListStaff)
	admin.GET("/subscriptions", planHandler.ListPlans)
	admin.POST("/subscriptions", planHandler.CreatePlan)
	admin.GET("/subscriptions/:id", planHandler.GetPlan)
	admin.PUT("/subscriptions/:id", planHandler.UpdatePlan)
	admin.DELETE("/subscriptions/:id", planHandler.DeletePlan)
	admin.GET("/audit", auditHandler.Recent)

	staff := e.Group("/staff", gate, staffOrAdmin)
	staff.GET("/books", catalogHandler.ListBooks)
	staff.POST("/books", catalogHandler.CreateBook)
	staff.GET("/books/:id", catalogHandler.GetBook)
	staff.PUT("/books/:id", catalogHandler.UpdateBook)
	staff.DELETE("/books/:id", catalogHandler.DeleteBook)
	staff.GET("/books/:id/chapters", catalogHandler.ListChapters)
	staff.POST("/books/:id/chapters", catalogHandler.CreateChapter)
	staff.GET("/books/:id/chapters/:chapterId", catalogHandler.GetChapter)
	staff.PUT("/books/:id/chapters/:chapterId", catalogHandler.UpdateChapter)
	staff.DELETE("/books/:id/chapters/:chapterId", catalogHandler.DeleteChapter)
	staff.GET("/categories", catalogHandler.ListCategories)

	return e
}
