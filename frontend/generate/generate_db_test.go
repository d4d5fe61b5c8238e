package generate

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/uptrace/bun"

	"serialtrace/epcis"
	"serialtrace/infrastructure/audit"
	"serialtrace/infrastructure/sqlite"
	"serialtrace/models"
)

func openGenerateTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "generate-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	err = db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
VALUES (1, 'operator1', 'hash', 'operator', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO configurations (id, name, company_prefix, item_indicator_digit, item_product_code, sscc_indicator_digit, sender_gln, receiver_gln, number_of_sscc, created_at, updated_at)
VALUES (1, 'Test Config', '1234567', '3', '000001', '0', '0360001000017', '0360002000016', 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
		return err
	})
	if err != nil {
		t.Fatalf("seed rows: %v", err)
	}
	return db
}

func TestRequiredSerialCounts(t *testing.T) {
	threeLevel := epcis.Configuration{NumberOfSSCC: 2, CasesPerSSCC: 5, ItemsPerCase: 10}
	counts := RequiredSerialCounts(threeLevel)
	if counts["sscc"] != 2 || counts["case"] != 10 || counts["item"] != 100 {
		t.Fatalf("unexpected three-level counts: %+v", counts)
	}
	if _, ok := counts["inner_case"]; ok {
		t.Fatalf("inner_case must be absent without inner cases")
	}

	fourLevel := epcis.Configuration{NumberOfSSCC: 1, CasesPerSSCC: 2, InnerCasesEnabled: true, InnerCasesPerCase: 3, ItemsPerInnerCase: 4}
	counts = RequiredSerialCounts(fourLevel)
	if counts["case"] != 2 || counts["inner_case"] != 6 || counts["item"] != 24 {
		t.Fatalf("unexpected four-level counts: %+v", counts)
	}

	direct := epcis.Configuration{NumberOfSSCC: 3, ItemsPerCase: 10}
	counts = RequiredSerialCounts(direct)
	if counts["item"] != 30 || counts["sscc"] != 3 {
		t.Fatalf("unexpected direct-packing counts: %+v", counts)
	}
	if _, ok := counts["case"]; ok {
		t.Fatalf("case must be absent for direct packing")
	}
}

func TestRecordGenerationRunAndListRuns(t *testing.T) {
	db := openGenerateTestDB(t)
	auditSvc := audit.NewService()

	run := models.GenerationRun{
		ConfigurationID: 1,
		Filename:        "epcis-0360001000017-0360002000016-260825.xml",
		SSCCCount:       1,
		EventCount:      10,
		ReadPoint:       "urn:epc:id:sgln:0360001.00002.0",
		DespatchAdvice:  "DESADV-8831",
		CreatedByUserID: 1,
	}
	id, err := RecordGenerationRun(context.Background(), db, auditSvc, run)
	if err != nil {
		t.Fatalf("record run: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected assigned run id, got %d", id)
	}

	rows, err := ListRuns(context.Background(), db)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one run, got %d", len(rows))
	}
	if rows[0].ConfigurationName != "Test Config" || rows[0].CreatedBy != "operator1" {
		t.Fatalf("unexpected run row: %+v", rows[0])
	}
	if rows[0].EventCount != 10 {
		t.Fatalf("expected 10 events, got %d", rows[0].EventCount)
	}

	var auditCount int
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(1) FROM audit_logs WHERE action = 'document.generate'`).Scan(ctx, &auditCount)
	})
	if err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("expected one audit row, got %d", auditCount)
	}
}
