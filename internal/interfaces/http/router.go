package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/analytics"
	"github.com/tu-usuario/granja-pro/internal/application/auth"
	"github.com/tu-usuario/granja-pro/internal/application/earnings"
	"github.com/tu-usuario/granja-pro/internal/application/session"
	"github.com/tu-usuario/granja-pro/internal/application/usecase"
	"github.com/tu-usuario/granja-pro/internal/domain/permission"
	"github.com/tu-usuario/granja-pro/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	Manager     *session.Manager
	CaretakerUC *usecase.CaretakerUseCase
	GoatUC      *usecase.GoatUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	HealthUC    *usecase.HealthUseCase
	EarningsSvc *earnings.Service
	DashboardUC *analytics.DashboardUseCase
	ReportGen   *pdf.EarningsReportGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
//
// Tres niveles de protección:
//  1. /api/auth: público.
//  2. /api/session y /api/businesses: requieren Bearer Token (AuthMiddleware).
//  3. El resto: además de token, RequireFeature verifica el permiso de la
//     pestaña contra la sesión resuelta y fija el negocio activo en Locals.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/role-lookup", authHandler.LookupRole)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sesión: arranque, snapshot, refresh, switch y navegación.
	// No pasan por RequireFeature porque son las rutas que lo alimentan.
	sessionHandler := NewSessionHandler(deps.Manager)
	sessionGroup := protected.Group("/session")
	sessionGroup.Post("/", sessionHandler.Resolve)
	sessionGroup.Get("/", sessionHandler.Get)
	sessionGroup.Delete("/", sessionHandler.SignOut)
	sessionGroup.Post("/refresh", sessionHandler.Refresh)
	sessionGroup.Post("/switch", sessionHandler.Switch)
	sessionGroup.Get("/navigation", sessionHandler.Navigation)

	// Negocios: crear queda fuera de RequireFeature (el onboarding ocurre sin
	// negocio activo); actualizar y borrar verifican creador en el manager.
	businessHandler := NewBusinessHandler(deps.Manager)
	businesses := protected.Group("/businesses")
	businesses.Post("/", businessHandler.Create)
	businesses.Put("/:id", RequireFeature(permission.FeatureSettings, deps.Manager), businessHandler.Update)
	businesses.Delete("/:id", RequireFeature(permission.FeatureSettings, deps.Manager), businessHandler.Delete)

	// Dashboard (protegido por pestaña)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequireFeature(permission.FeatureDashboard, deps.Manager), dashboardHandler.Summary)

	// Animales y pesos
	goatHandler := NewGoatHandler(deps.GoatUC)
	goats := protected.Group("/goats", RequireFeature(permission.FeatureGoats, deps.Manager))
	goats.Post("/", goatHandler.Create)
	goats.Get("/", goatHandler.List)
	goats.Get("/:id", goatHandler.GetByID)
	goats.Put("/:id", goatHandler.Update)
	goats.Post("/:id/weights", goatHandler.AddWeight)
	goats.Get("/:id/weights", goatHandler.ListWeights)

	// Scanner: lee el mismo detalle de animal pero con su propia pestaña,
	// para que un cuidador sin acceso a la lista pueda escanear aretes.
	scanner := protected.Group("/scanner", RequireFeature(permission.FeatureScanner, deps.Manager))
	scanner.Get("/:id", goatHandler.GetByID)

	// Registros sanitarios
	healthHandler := NewHealthHandler(deps.HealthUC)
	healthGroup := protected.Group("/health-records", RequireFeature(permission.FeatureHealth, deps.Manager))
	healthGroup.Post("/", healthHandler.Create)
	healthGroup.Get("/", healthHandler.List)
	healthGroup.Get("/goat/:goatId", healthHandler.ListByGoat)

	// Cuidadores
	caretakerHandler := NewCaretakerHandler(deps.CaretakerUC, deps.AuthUC)
	caretakers := protected.Group("/caretakers", RequireFeature(permission.FeatureCaretakers, deps.Manager))
	caretakers.Post("/", caretakerHandler.Create)
	caretakers.Get("/", caretakerHandler.List)
	caretakers.Put("/:id", caretakerHandler.Update)
	caretakers.Delete("/:id", caretakerHandler.Delete)
	caretakers.Post("/invite", caretakerHandler.Invite)
	caretakers.Put("/:userId/permissions", caretakerHandler.UpdatePermissions)

	// Finanzas: gastos y cálculo de ganancias
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses := protected.Group("/expenses", RequireFeature(permission.FeatureFinances, deps.Manager))
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)

	earningsHandler := NewEarningsHandler(deps.EarningsSvc, deps.ReportGen)
	earningsGroup := protected.Group("/earnings", RequireFeature(permission.FeatureFinances, deps.Manager))
	earningsGroup.Get("/:caretakerId", earningsHandler.Get)

	// Reportes PDF (pestaña aparte de finanzas)
	reports := protected.Group("/reports", RequireFeature(permission.FeatureReports, deps.Manager))
	reports.Get("/earnings/:caretakerId", earningsHandler.Report)
}
