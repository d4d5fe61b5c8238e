package generate

import (
	"context"
	"strconv"

	"github.com/uptrace/bun"

	"serialtrace/epcis"
	"serialtrace/infrastructure/audit"
	"serialtrace/infrastructure/sqlite"
	"serialtrace/models"
)

// RequiredSerialCounts returns how many serials each level needs for one
// full document under cfg.
func RequiredSerialCounts(cfg epcis.Configuration) map[string]int {
	counts := map[string]int{
		string(epcis.LevelSSCC): cfg.NumberOfSSCC,
	}
	switch {
	case cfg.InnerCasesEnabled:
		cases := cfg.NumberOfSSCC * cfg.CasesPerSSCC
		inners := cases * cfg.InnerCasesPerCase
		counts[string(epcis.LevelCase)] = cases
		counts[string(epcis.LevelInnerCase)] = inners
		counts[string(epcis.LevelItem)] = inners * cfg.ItemsPerInnerCase
	case cfg.CasesPerSSCC > 0:
		cases := cfg.NumberOfSSCC * cfg.CasesPerSSCC
		counts[string(epcis.LevelCase)] = cases
		counts[string(epcis.LevelItem)] = cases * cfg.ItemsPerCase
	default:
		counts[string(epcis.LevelItem)] = cfg.NumberOfSSCC * cfg.ItemsPerCase
	}
	return counts
}

// RecordGenerationRun stores the run row and its audit entry in one
// transaction.
func RecordGenerationRun(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, run models.GenerationRun) (int64, error) {
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&run).Exec(ctx); err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, run.CreatedByUserID, "document.generate", "generation_run", strconv.FormatInt(run.ID, 10), nil, run)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return run.ID, nil
}

// ListRuns returns generation history, newest first.
func ListRuns(ctx context.Context, db *sqlite.DB) ([]RunView, error) {
	rows := make([]RunView, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT gr.id, c.name AS configuration_name, gr.filename, gr.sscc_count, gr.event_count,
       u.username AS created_by,
       strftime('%d/%m/%Y %H:%M', gr.created_at) AS created_at
FROM generation_runs gr
JOIN configurations c ON c.id = gr.configuration_id
JOIN users u ON u.id = gr.created_by_user_id
ORDER BY gr.id DESC`).Scan(ctx, &rows)
	})
	return rows, err
}
