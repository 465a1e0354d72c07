package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/evisarw/visa-management/internal/application"
	"github.com/evisarw/visa-management/internal/arrival"
	"github.com/evisarw/visa-management/internal/auth"
	"github.com/evisarw/visa-management/internal/country"
	"github.com/evisarw/visa-management/internal/permission"
	"github.com/evisarw/visa-management/internal/report"
	"github.com/evisarw/visa-management/internal/transport/middleware"
	"github.com/evisarw/visa-management/internal/transport/swagger"
	"github.com/evisarw/visa-management/internal/user"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Authz        *auth.Authorization
	Applications *application.Handler
	Arrivals     *arrival.Handler
	Reports      *report.Handler
	Users        *user.Handler
	Countries    *country.Handler
	Permissions  *permission.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/Auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/signup", h.Auth.Signup)
			sr.Post("/refresh", h.Auth.RefreshToken)

			sr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.AuthMiddleware)
				ar.Get("/me", h.Auth.CurrentUser)
			})
		})

		// Public surface: applying, verifying and the country list for
		// the form. Submission picks up the user when a token is sent.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.OptionalAuthMiddleware)
			pr.Post("/VisaApplications", h.Applications.SubmitApplication)
		})
		r.Get("/VisaApplications/verify/{referenceNumber}", h.Applications.VerifyApplication)
		r.Get("/Countries", h.Countries.GetCountries)

		// Back office.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/VisaApplications", func(vr chi.Router) {
				vr.With(h.Authz.Require(permission.ApplicationsView)).Get("/", h.Applications.ListApplications)
				vr.With(h.Authz.Require(permission.ApplicationsView)).Get("/{id}", h.Applications.GetApplication)
				vr.With(h.Authz.Require(permission.ApplicationsView)).Get("/{id}/document", h.Applications.DownloadDocument)
				vr.With(h.Authz.Require(permission.ApplicationsUpdate)).Put("/{id}", h.Applications.UpdateApplication)
				vr.With(h.Authz.Require(permission.ApplicationsApprove)).Post("/{id}/approve", h.Applications.ApproveApplication)
				vr.With(h.Authz.Require(permission.ApplicationsReject)).Post("/{id}/reject", h.Applications.RejectApplication)
				vr.With(h.Authz.Require(permission.ApplicationsDelete)).Delete("/{id}", h.Applications.DeleteApplication)
			})

			pr.Route("/ArrivalRecords", func(ar chi.Router) {
				ar.With(h.Authz.Require(permission.ArrivalsView)).Get("/", h.Arrivals.ListRecords)
				ar.With(h.Authz.Require(permission.ArrivalsView)).Get("/{id}", h.Arrivals.GetRecord)
				ar.With(h.Authz.Require(permission.ArrivalsCreate)).Post("/", h.Arrivals.RecordArrival)
				ar.With(h.Authz.Require(permission.ArrivalsUpdate)).Post("/{id}/departure", h.Arrivals.RecordDeparture)
			})

			pr.Route("/Reports", func(rr chi.Router) {
				rr.With(h.Authz.Require(permission.ReportsView)).Get("/dashboard", h.Reports.Dashboard)
				rr.With(h.Authz.Require(permission.ReportsView)).Get("/applications", h.Reports.Applications)
				rr.With(h.Authz.Require(permission.ReportsView)).Get("/officers", h.Reports.Officers)
				rr.With(h.Authz.Require(permission.ReportsExport)).Get("/export", h.Reports.Export)
			})

			pr.Route("/Users", func(ur chi.Router) {
				ur.With(h.Authz.Require(permission.UsersView)).Get("/", h.Users.ListUsers)
				ur.With(h.Authz.Require(permission.UsersView)).Get("/{id}", h.Users.GetUser)
				ur.With(h.Authz.Require(permission.UsersManage)).Post("/", h.Users.CreateUser)
				ur.With(h.Authz.Require(permission.UsersManage)).Post("/{id}/activate", h.Users.ActivateUser)
				ur.With(h.Authz.Require(permission.UsersManage)).Post("/{id}/deactivate", h.Users.DeactivateUser)
				ur.With(h.Authz.Require(permission.UsersManage)).Delete("/{id}", h.Users.DeleteUser)

				ur.With(h.Authz.Require(permission.PermissionsManage)).Get("/{id}/permissions", h.Permissions.ListForUser)
				ur.With(h.Authz.Require(permission.PermissionsManage)).Post("/{id}/permissions", h.Permissions.Grant)
				ur.With(h.Authz.Require(permission.PermissionsManage)).Delete("/{id}/permissions/{name}", h.Permissions.Revoke)
			})

			pr.Route("/Countries", func(cr chi.Router) {
				cr.With(h.Authz.Require(permission.CountriesManage)).Get("/all", h.Countries.GetAllCountries)
				cr.With(h.Authz.Require(permission.CountriesManage)).Post("/", h.Countries.CreateCountry)
				cr.With(h.Authz.Require(permission.CountriesManage)).Put("/{id}", h.Countries.UpdateCountry)
				cr.With(h.Authz.Require(permission.CountriesManage)).Post("/{id}/activate", h.Countries.ActivateCountry)
				cr.With(h.Authz.Require(permission.CountriesManage)).Post("/{id}/deactivate", h.Countries.DeactivateCountry)
			})

			pr.Route("/Permissions", func(pmr chi.Router) {
				pmr.With(h.Authz.Require(permission.PermissionsManage)).Get("/", h.Permissions.List)
				pmr.With(h.Authz.Require(permission.PermissionsManage)).Post("/", h.Permissions.Create)
				pmr.With(h.Authz.Require(permission.PermissionsManage)).Post("/{name}/activate", h.Permissions.Activate)
				pmr.With(h.Authz.Require(permission.PermissionsManage)).Post("/{name}/deactivate", h.Permissions.Deactivate)
			})
		})
	})
}
