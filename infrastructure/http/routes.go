package http

import (
	"net/http"

	adminusers "serialtrace/frontend/adminUsers"
	"serialtrace/frontend/configurations"
	generatepage "serialtrace/frontend/generate"
	labelspage "serialtrace/frontend/labels"
	"serialtrace/frontend/login"
	runspage "serialtrace/frontend/runs"
	serialspage "serialtrace/frontend/serials"
	"serialtrace/infrastructure/rbac"

	"github.com/go-chi/chi/v5"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.UserCache))
	s.router.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterAdminRoutes registers admin-only routes.
func (s *Server) RegisterAdminRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_LIST_VIEW", http.MethodGet, "/console/admin/users")
	r.Get("/admin/users", adminusers.UsersPageQueryHandler(s.DB, s.UserCache))
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_CREATE", http.MethodPost, "/console/admin/users")
	r.Post("/admin/users", adminusers.CreateUserCommandHandler(s.DB, s.UserCache))
	return r
}

// RegisterFrontendRoutes registers authenticated routes.
func (s *Server) RegisterFrontendRoutes(r chi.Router) chi.Router {
	s.RegisterConfigurationRoutes(r)
	s.RegisterSerialRoutes(r)
	s.RegisterGenerateRoutes(r)
	return r
}

func (s *Server) RegisterConfigurationRoutes(r chi.Router) {
	s.Rbac.Add(rbac.RoleAdmin, "CONFIGURATIONS_LIST_VIEW", http.MethodGet, "/console/configurations")
	s.Rbac.Add(rbac.RoleOperator, "CONFIGURATIONS_LIST_VIEW", http.MethodGet, "/console/configurations")
	r.Get("/configurations", configurations.ConfigurationsPageQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "CONFIGURATIONS_CREATE", http.MethodPost, "/console/configurations")
	r.Post("/configurations", configurations.CreateConfigurationCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleAdmin, "CONFIGURATION_DETAIL_VIEW", http.MethodGet, "/console/configurations/*")
	s.Rbac.Add(rbac.RoleOperator, "CONFIGURATION_DETAIL_VIEW", http.MethodGet, "/console/configurations/*")
	r.Get("/configurations/{id}", configurations.ConfigurationDetailQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "CONFIGURATION_EDIT", http.MethodPost, "/console/configurations/*")
	r.Post("/configurations/{id}", configurations.UpdateConfigurationCommandHandler(s.DB, s.Audit))
}

func (s *Server) RegisterSerialRoutes(r chi.Router) {
	s.Rbac.Add(rbac.RoleAdmin, "SERIALS_IMPORT_VIEW", http.MethodGet, "/console/configurations/*/serials")
	s.Rbac.Add(rbac.RoleOperator, "SERIALS_IMPORT_VIEW", http.MethodGet, "/console/configurations/*/serials")
	r.Get("/configurations/{id}/serials", serialspage.SerialImportPageQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "SERIALS_IMPORT", http.MethodPost, "/console/configurations/*/serials")
	s.Rbac.Add(rbac.RoleOperator, "SERIALS_IMPORT", http.MethodPost, "/console/configurations/*/serials")
	r.Post("/configurations/{id}/serials", serialspage.SerialImportCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleAdmin, "SERIALS_CLEAR", http.MethodPost, "/console/configurations/*/serials/clear")
	r.Post("/configurations/{id}/serials/clear", serialspage.SerialClearCommandHandler(s.DB, s.Audit))
}

func (s *Server) RegisterGenerateRoutes(r chi.Router) {
	s.Rbac.Add(rbac.RoleAdmin, "GENERATE_VIEW", http.MethodGet, "/console/configurations/*/generate")
	s.Rbac.Add(rbac.RoleOperator, "GENERATE_VIEW", http.MethodGet, "/console/configurations/*/generate")
	r.Get("/configurations/{id}/generate", generatepage.GeneratePageQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "GENERATE_DOCUMENT", http.MethodPost, "/console/configurations/*/generate")
	s.Rbac.Add(rbac.RoleOperator, "GENERATE_DOCUMENT", http.MethodPost, "/console/configurations/*/generate")
	r.Post("/configurations/{id}/generate", generatepage.GenerateDocumentCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleAdmin, "SSCC_LABELS_PDF", http.MethodGet, "/console/configurations/*/labels.pdf")
	s.Rbac.Add(rbac.RoleOperator, "SSCC_LABELS_PDF", http.MethodGet, "/console/configurations/*/labels.pdf")
	r.Get("/configurations/{id}/labels.pdf", labelspage.SSCCLabelsPDFHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "RUNS_LIST_VIEW", http.MethodGet, "/console/runs")
	r.Get("/runs", runspage.RunsPageQueryHandler(s.DB))
}
