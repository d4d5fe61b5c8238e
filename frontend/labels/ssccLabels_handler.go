package labels

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"serialtrace/epcis"
	"serialtrace/frontend/configurations"
	"serialtrace/frontend/serials"
	sessioncontext "serialtrace/frontend/shared/context"
	"serialtrace/infrastructure/sqlite"
)

// SSCCLabelsPDFHandler streams one label page per SSCC serial in the pool.
func SSCCLabelsPDFHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessioncontext.GetSessionFromContext(r.Context()); !ok {
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

		set, err := serials.LoadSerialSet(r.Context(), db, id)
		if err != nil {
			http.Error(w, "failed to load serial pools", http.StatusInternalServerError)
			return
		}
		if len(set.SSCC) == 0 {
			http.Error(w, "no SSCC serials imported for this configuration", http.StatusUnprocessableEntity)
			return
		}

		engineCfg := configurations.EngineConfiguration(cfg)
		labelData := make([]SSCCLabelData, 0, len(set.SSCC))
		for _, serial := range set.SSCC {
			sscc18, err := epcis.SSCC18(engineCfg.CompanyPrefix, engineCfg.SSCCIndicatorDigit, serial)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			urn, err := epcis.BuildKey(epcis.LevelSSCC, engineCfg, serial)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			labelData = append(labelData, SSCCLabelData{
				SSCC18:       sscc18,
				URN:          urn,
				SenderName:   cfg.SenderName,
				ReceiverName: cfg.ReceiverName,
				LotNumber:    cfg.LotNumber,
			})
		}

		pdfBytes, err := renderSSCCLabelsPDF(labelData, time.Now())
		if err != nil {
			slog.Error("labels: failed to render pdf", slog.Int64("configuration_id", id), slog.Any("err", err))
			http.Error(w, "failed to render labels", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sscc-labels-%d.pdf"`, id))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdfBytes)
	}
}
