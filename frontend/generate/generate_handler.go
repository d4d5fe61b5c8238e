package generate

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"serialtrace/epcis"
	"serialtrace/frontend/configurations"
	"serialtrace/frontend/serials"
	sessioncontext "serialtrace/frontend/shared/context"
	"serialtrace/infrastructure/audit"
	"serialtrace/infrastructure/sqlite"
	"serialtrace/models"
)

// GeneratePageQueryHandler renders the generation form with the pool fill
// state against the required counts.
func GeneratePageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.NotFound(w, r)
			return
		}

		cfg, err := configurations.LoadConfiguration(r.Context(), db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "failed to load configuration", http.StatusInternalServerError)
			return
		}

		available, err := serials.CountSerialsByLevel(r.Context(), db, id)
		if err != nil {
			http.Error(w, "failed to load serial counts", http.StatusInternalServerError)
			return
		}

		data := PageData{
			ConfigurationID:   id,
			ConfigurationName: cfg.Name,
			Required:          RequiredSerialCounts(configurations.EngineConfiguration(cfg)),
			Available:         available,
			ErrorMessage:      r.URL.Query().Get("error"),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := GeneratePage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render generate page", http.StatusInternalServerError)
			return
		}
	}
}

// GenerateDocumentCommandHandler builds the document and streams it as a
// download. Engine validation failures come back as 422 with the message.
func GenerateDocumentCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.NotFound(w, r)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}
		params := epcis.GenerateParams{
			ReadPoint:      strings.TrimSpace(r.FormValue("read_point")),
			BizLocation:    strings.TrimSpace(r.FormValue("biz_location")),
			DespatchAdvice: strings.TrimSpace(r.FormValue("despatch_advice")),
			Now:            time.Now().UTC(),
		}

		cfg, err := configurations.LoadConfiguration(r.Context(), db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "failed to load configuration", http.StatusInternalServerError)
			return
		}

		set, err := serials.LoadSerialSet(r.Context(), db, id)
		if err != nil {
			http.Error(w, "failed to load serial pools", http.StatusInternalServerError)
			return
		}

		doc, filename, err := epcis.Generate(configurations.EngineConfiguration(cfg), set, params)
		if err != nil {
			if _, ok := epcis.KindOf(err); ok {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			slog.Error("generate: engine failure", slog.Int64("configuration_id", id), slog.Any("err", err))
			http.Error(w, "document generation failed", http.StatusInternalServerError)
			return
		}

		raw, err := doc.Marshal()
		if err != nil {
			slog.Error("generate: marshal failure", slog.Int64("configuration_id", id), slog.Any("err", err))
			http.Error(w, "document serialization failed", http.StatusInternalServerError)
			return
		}

		run := models.GenerationRun{
			ConfigurationID: id,
			Filename:        filename,
			SSCCCount:       cfg.NumberOfSSCC,
			EventCount:      doc.EventCount(),
			ReadPoint:       params.ReadPoint,
			BizLocation:     params.BizLocation,
			DespatchAdvice:  params.DespatchAdvice,
			CreatedByUserID: session.UserID,
		}
		if _, err := RecordGenerationRun(r.Context(), db, auditSvc, run); err != nil {
			slog.Error("generate: failed to record run", slog.Int64("configuration_id", id), slog.Any("err", err))
			http.Error(w, "failed to record generation run", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}
