package runs

import (
	"log/slog"
	"net/http"

	generatepage "serialtrace/frontend/generate"
	sessioncontext "serialtrace/frontend/shared/context"
	"serialtrace/infrastructure/sqlite"
)

// RunsPageQueryHandler renders generation history.
func RunsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		rows, err := generatepage.ListRuns(r.Context(), db)
		if err != nil {
			slog.Error("runs: failed to load history", slog.Any("err", err))
			http.Error(w, "failed to load generation runs", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := RunsPage(session, rows).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render runs page", http.StatusInternalServerError)
			return
		}
	}
}
