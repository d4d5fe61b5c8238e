package serials

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	sessioncontext "serialtrace/frontend/shared/context"
	"serialtrace/infrastructure/audit"
	"serialtrace/infrastructure/sqlite"
)

// SerialImportPageQueryHandler renders the per-configuration import page.
func SerialImportPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		configurationID, name, ok := resolveConfiguration(w, r, db)
		if !ok {
			return
		}

		counts, err := CountSerialsByLevel(r.Context(), db, configurationID)
		if err != nil {
			http.Error(w, "failed to load serial counts", http.StatusInternalServerError)
			return
		}

		message := r.URL.Query().Get("status")
		if message == "" {
			message = "Upload CSV with header: level,serial"
		}
		data := PageData{
			ConfigurationID:   configurationID,
			ConfigurationName: name,
			Counts:            counts,
			Message:           message,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := SerialImportPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render serial import page", http.StatusInternalServerError)
			return
		}
	}
}

// SerialImportCommandHandler ingests an uploaded CSV into the pools.
func SerialImportCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		configurationID, _, ok := resolveConfiguration(w, r, db)
		if !ok {
			return
		}
		importURL := fmt.Sprintf("/console/configurations/%d/serials", configurationID)

		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Redirect(w, r, importURL+"?status="+url.QueryEscape("Error: invalid upload"), http.StatusSeeOther)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Redirect(w, r, importURL+"?status="+url.QueryEscape("Error: file is required"), http.StatusSeeOther)
			return
		}
		defer file.Close()

		summary, err := ImportCSV(r.Context(), db, auditSvc, session.UserID, configurationID, file)
		if err != nil {
			http.Redirect(w, r, importURL+"?status="+url.QueryEscape("Error: "+err.Error()), http.StatusSeeOther)
			return
		}

		status := fmt.Sprintf("Imported: %d inserted, %d duplicates skipped, %d errors", summary.Inserted, summary.Skipped, summary.Errors)
		http.Redirect(w, r, importURL+"?status="+url.QueryEscape(status), http.StatusSeeOther)
	}
}

// SerialClearCommandHandler empties the configuration's pools.
func SerialClearCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		configurationID, _, ok := resolveConfiguration(w, r, db)
		if !ok {
			return
		}
		importURL := fmt.Sprintf("/console/configurations/%d/serials", configurationID)

		deleted, err := ClearSerials(r.Context(), db, auditSvc, session.UserID, configurationID)
		if err != nil {
			http.Redirect(w, r, importURL+"?status="+url.QueryEscape("Failed to clear serial pools"), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, importURL+"?status="+url.QueryEscape(fmt.Sprintf("Removed %d serials", deleted)), http.StatusSeeOther)
	}
}

func resolveConfiguration(w http.ResponseWriter, r *http.Request, db *sqlite.DB) (int64, string, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return 0, "", false
	}
	var name string
	err = db.WithReadTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT name FROM configurations WHERE id = ?`, id).Scan(ctx, &name)
	})
	if err != nil {
		if err == sql.ErrNoRows {
			http.NotFound(w, r)
		} else {
			http.Error(w, "failed to load configuration", http.StatusInternalServerError)
		}
		return 0, "", false
	}
	return id, name, true
}
