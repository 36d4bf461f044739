package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/http/handlers"
	"github.com/spec-kit/gym-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Students       *handlers.StudentsHandler
	Plans          *handlers.PlansHandler
	CheckIns       *handlers.CheckInsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me/permissoes", cfg.Auth.Permissions)

	students := protected.Group("/alunos")
	students.Post("/", auth.RequirePermission(auth.PermCreateStudent), cfg.Students.Create)
	students.Get("/", auth.RequirePermission(auth.PermListStudents), cfg.Students.List)
	students.Get("/:id", auth.RequirePermission(auth.PermViewStudent), cfg.Students.Get)
	students.Put("/:id", auth.RequirePermission(auth.PermUpdateStudent), cfg.Students.Update)
	students.Delete("/:id", auth.RequirePermission(auth.PermDeleteStudent), cfg.Students.Delete)

	staff := protected.Group("/funcionarios")
	staff.Post("/", auth.RequirePermission(auth.PermCreateStaff), cfg.Staff.CreateStaff)
	staff.Get("/", auth.RequirePermission(auth.PermListStaff), cfg.Staff.ListStaff)
	staff.Get("/:id", auth.RequirePermission(auth.PermViewStaff), cfg.Staff.GetStaff)
	staff.Put("/:id", auth.RequirePermission(auth.PermUpdateStaff), cfg.Staff.UpdateStaff)
	staff.Delete("/:id", auth.RequirePermission(auth.PermDeleteStaff), cfg.Staff.DeleteStaff)
	staff.Post("/:id/desbloquear", auth.RequirePermission(auth.PermUnlockStaff), cfg.Staff.UnlockStaff)

	plans := protected.Group("/planos")
	plans.Post("/", auth.RequirePermission(auth.PermCreatePlan), cfg.Plans.Create)
	plans.Get("/", auth.RequirePermission(auth.PermListPlans), cfg.Plans.List)
	plans.Get("/:id", auth.RequirePermission(auth.PermViewPlan), cfg.Plans.Get)
	plans.Put("/:id", auth.RequirePermission(auth.PermUpdatePlan), cfg.Plans.Update)
	plans.Delete("/:id", auth.RequirePermission(auth.PermDeletePlan), cfg.Plans.Delete)

	checkIns := protected.Group("/checkins")
	checkIns.Post("/", auth.RequirePermission(auth.PermCreateCheckIn), cfg.CheckIns.Create)
	checkIns.Get("/", auth.RequirePermission(auth.PermListCheckIns), cfg.CheckIns.List)
	checkIns.Get("/aluno/:alunoId", auth.RequirePermission(auth.PermViewCheckIn), cfg.CheckIns.ListByStudent)
	checkIns.Get("/:id", auth.RequirePermission(auth.PermViewCheckIn), cfg.CheckIns.Get)
	checkIns.Delete("/:id", auth.RequirePermission(auth.PermDeleteCheckIn), cfg.CheckIns.Delete)

	reports := protected.Group("/relatorios")
	reports.Get("/resumo", auth.RequireAnyPermission(auth.PermGenerateReports, auth.PermViewFinancial), cfg.Reports.Summary)
}
