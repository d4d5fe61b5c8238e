package configurations

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"serialtrace/epcis"
	"serialtrace/frontend/serials"
	"serialtrace/frontend/shared/context"
	"serialtrace/infrastructure/audit"
	"serialtrace/infrastructure/sqlite"
	"serialtrace/models"
)

// ConfigurationsPageQueryHandler renders the configuration list page.
func ConfigurationsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		views, err := ListConfigurations(r.Context(), db)
		if err != nil {
			slog.Error("configurations: failed to load list", slog.Any("err", err))
			http.Error(w, "failed to load configurations", http.StatusInternalServerError)
			return
		}

		data := PageData{
			Configurations: views,
			Status:         r.URL.Query().Get("status"),
			ErrorMessage:   r.URL.Query().Get("error"),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ConfigurationsListPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render configurations page", http.StatusInternalServerError)
			return
		}
	}
}

// CreateConfigurationCommandHandler stores a new configuration from form input.
func CreateConfigurationCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		cfg, err := parseConfigurationForm(r)
		if err != nil {
			http.Redirect(w, r, "/console/configurations?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}

		id, err := CreateConfiguration(r.Context(), db, auditSvc, session.UserID, cfg)
		if err != nil {
			http.Redirect(w, r, "/console/configurations?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/console/configurations/"+strconv.FormatInt(id, 10)+"?status="+url.QueryEscape("configuration created"), http.StatusSeeOther)
	}
}

// ConfigurationDetailQueryHandler renders one configuration with its serial
// pool fill state.
func ConfigurationDetailQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.NotFound(w, r)
			return
		}

		cfg, err := LoadConfiguration(r.Context(), db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				http.NotFound(w, r)
				return
			}
			slog.Error("configurations: failed to load detail", slog.Int64("id", id), slog.Any("err", err))
			http.Error(w, "failed to load configuration", http.StatusInternalServerError)
			return
		}

		counts, err := serials.CountSerialsByLevel(r.Context(), db, id)
		if err != nil {
			slog.Error("configurations: failed to count serials", slog.Int64("id", id), slog.Any("err", err))
			http.Error(w, "failed to load serial counts", http.StatusInternalServerError)
			return
		}

		data := DetailData{
			Configuration: cfg,
			SerialCounts:  counts,
			Status:        r.URL.Query().Get("status"),
			ErrorMessage:  r.URL.Query().Get("error"),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ConfigurationDetailPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render configuration page", http.StatusInternalServerError)
			return
		}
	}
}

// UpdateConfigurationCommandHandler applies form edits to a configuration.
func UpdateConfigurationCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.NotFound(w, r)
			return
		}
		detailURL := "/console/configurations/" + strconv.FormatInt(id, 10)

		cfg, err := parseConfigurationForm(r)
		if err != nil {
			http.Redirect(w, r, detailURL+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}

		if err := UpdateConfiguration(r.Context(), db, auditSvc, session.UserID, id, cfg); err != nil {
			if err == sql.ErrNoRows {
				http.NotFound(w, r)
				return
			}
			http.Redirect(w, r, detailURL+"?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, detailURL+"?status="+url.QueryEscape("configuration updated"), http.StatusSeeOther)
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrNameExists),
		errors.Is(err, ErrPrefixRequired):
		return err.Error()
	}
	if _, ok := epcis.KindOf(err); ok {
		return err.Error()
	}
	slog.Error("configurations: command failed", slog.Any("err", err))
	return "failed to save configuration"
}

func parseConfigurationForm(r *http.Request) (models.Configuration, error) {
	if err := r.ParseForm(); err != nil {
		return models.Configuration{}, errors.New("invalid form data")
	}

	field := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	number := func(name string) (int, error) {
		raw := field(name)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, errors.New(name + " must be a non-negative number")
		}
		return n, nil
	}

	cfg := models.Configuration{
		Name:          field("name"),
		CompanyPrefix: field("company_prefix"),

		InnerCasesEnabled: field("inner_cases_enabled") == "on" || field("inner_cases_enabled") == "true",

		ItemIndicatorDigit:      field("item_indicator_digit"),
		ItemProductCode:         field("item_product_code"),
		CaseIndicatorDigit:      field("case_indicator_digit"),
		CaseProductCode:         field("case_product_code"),
		InnerCaseIndicatorDigit: field("inner_case_indicator_digit"),
		InnerCaseProductCode:    field("inner_case_product_code"),
		SSCCIndicatorDigit:      field("sscc_indicator_digit"),

		PackageNDC:            field("package_ndc"),
		RegulatedProductName:  field("regulated_product_name"),
		ManufacturerName:      field("manufacturer_name"),
		DosageFormType:        field("dosage_form_type"),
		StrengthDescription:   field("strength_description"),
		NetContentDescription: field("net_content_description"),
		LotNumber:             field("lot_number"),
		ExpirationDate:        field("expiration_date"),

		SenderName:          field("sender_name"),
		SenderCompanyPrefix: field("sender_company_prefix"),
		SenderGLN:           field("sender_gln"),
		SenderSGLN:          field("sender_sgln"),
		SenderStreet:        field("sender_street"),
		SenderCity:          field("sender_city"),
		SenderState:         field("sender_state"),
		SenderPostalCode:    field("sender_postal_code"),
		SenderCountryCode:   field("sender_country_code"),

		ReceiverName:          field("receiver_name"),
		ReceiverCompanyPrefix: field("receiver_company_prefix"),
		ReceiverGLN:           field("receiver_gln"),
		ReceiverSGLN:          field("receiver_sgln"),
		ReceiverStreet:        field("receiver_street"),
		ReceiverCity:          field("receiver_city"),
		ReceiverState:         field("receiver_state"),
		ReceiverPostalCode:    field("receiver_postal_code"),
		ReceiverCountryCode:   field("receiver_country_code"),

		ShipperSameAsSender:  field("shipper_same_as_sender") != "false" && field("shipper_same_as_sender") != "off",
		ShipperName:          field("shipper_name"),
		ShipperCompanyPrefix: field("shipper_company_prefix"),
		ShipperGLN:           field("shipper_gln"),
		ShipperSGLN:          field("shipper_sgln"),
		ShipperStreet:        field("shipper_street"),
		ShipperCity:          field("shipper_city"),
		ShipperState:         field("shipper_state"),
		ShipperPostalCode:    field("shipper_postal_code"),
		ShipperCountryCode:   field("shipper_country_code"),
	}

	var err error
	if cfg.ItemsPerCase, err = number("items_per_case"); err != nil {
		return models.Configuration{}, err
	}
	if cfg.ItemsPerInnerCase, err = number("items_per_inner_case"); err != nil {
		return models.Configuration{}, err
	}
	if cfg.InnerCasesPerCase, err = number("inner_cases_per_case"); err != nil {
		return models.Configuration{}, err
	}
	if cfg.CasesPerSSCC, err = number("cases_per_sscc"); err != nil {
		return models.Configuration{}, err
	}
	if cfg.NumberOfSSCC, err = number("number_of_sscc"); err != nil {
		return models.Configuration{}, err
	}
	return cfg, nil
}
