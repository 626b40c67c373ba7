package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "jobboard/docs"

	"jobboard/internal/http/middleware"
	"jobboard/internal/model"
	"jobboard/internal/service"
)

// Services bundles the business services the routes dispatch to.
type Services struct {
	Auth         service.AuthService
	Jobs         service.JobService
	Applications service.ApplicationService
	Admin        service.AdminService
}

// RegisterRoutes attaches the health checks and the /api routes to app.
// Role checks here only gate the route; ownership is enforced by the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, tokens middleware.TokenVerifier) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	// The document leaves host and schemes empty so the UI resolves requests
	// against whatever address served it.
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	authed := middleware.RequireAuth(tokens)
	employer := middleware.RequireRole(model.RoleEmployer, model.RoleAdmin)

	a := api.Group("/auth")
	a.Post("/register", Register(svc.Auth))
	a.Post("/login", Login(svc.Auth))
	a.Get("/profile", authed, GetProfile(svc.Auth))
	a.Put("/profile", authed, UpdateProfile(svc.Auth))
	a.Put("/profile/resume", authed, middleware.RequireRole(model.RoleApplicant), UploadResume(svc.Auth))

	j := api.Group("/jobs")
	j.Get("/", middleware.OptionalAuth(tokens), ListJobs(svc.Jobs))
	j.Get("/employer/my-jobs", authed, employer, EmployerJobs(svc.Jobs))
	j.Get("/:id", GetJob(svc.Jobs))
	j.Post("/", authed, employer, CreateJob(svc.Jobs))
	j.Put("/:id", authed, employer, UpdateJob(svc.Jobs))
	j.Delete("/:id", authed, employer, DeleteJob(svc.Jobs))

	ap := api.Group("/applications", authed)
	ap.Post("/", middleware.RequireRole(model.RoleApplicant), Apply(svc.Applications))
	ap.Get("/user/:userId", UserApplications(svc.Applications))
	ap.Get("/job/:jobId", employer, JobApplications(svc.Applications))
	ap.Get("/:id", GetApplication(svc.Applications))
	ap.Put("/:id/status", employer, UpdateApplicationStatus(svc.Applications))

	api.Get("/files/resumes/:name", authed, DownloadResume(svc.Applications))

	adm := api.Group("/admin", authed, middleware.RequireRole(model.RoleAdmin))
	adm.Get("/stats", AdminStats(svc.Admin))
	adm.Get("/users", AdminUsers(svc.Admin))
	adm.Delete("/users/:id", AdminDeleteUser(svc.Admin))
	adm.Get("/applications", AdminApplications(svc.Admin))
}
