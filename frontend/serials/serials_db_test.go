package serials

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/uptrace/bun"

	"serialtrace/infrastructure/sqlite"
)

func openSerialsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "serials-test.db")
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
		_, err := tx.ExecContext(ctx, `
INSERT INTO configurations (id, name, company_prefix, item_indicator_digit, item_product_code, sscc_indicator_digit, sender_gln, receiver_gln, number_of_sscc, created_at, updated_at)
VALUES (1, 'Test Config', '1234567', '3', '000001', '0', '0360001000017', '0360002000016', 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
		return err
	})
	if err != nil {
		t.Fatalf("seed configuration: %v", err)
	}
	return db
}

func TestImportCSV_InsertsInUploadOrder(t *testing.T) {
	db := openSerialsTestDB(t)

	csvBody := "level,serial\nitem,1003\nitem,1001\nsscc,4711\nitem,1002\n"
	summary, err := ImportCSV(context.Background(), db, nil, 1, 1, strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("import csv: %v", err)
	}
	if summary.Inserted != 4 || summary.Skipped != 0 || summary.Errors != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	set, err := LoadSerialSet(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("load serial set: %v", err)
	}
	// Upload order, not lexical order.
	want := []string{"1003", "1001", "1002"}
	if len(set.Item) != len(want) {
		t.Fatalf("expected %d item serials, got %d", len(want), len(set.Item))
	}
	for i, serial := range want {
		if set.Item[i] != serial {
			t.Fatalf("item serial %d: expected %s, got %s", i, serial, set.Item[i])
		}
	}
	if len(set.SSCC) != 1 || set.SSCC[0] != "4711" {
		t.Fatalf("unexpected sscc pool: %+v", set.SSCC)
	}
}

func TestImportCSV_AppendsAfterExistingSerials(t *testing.T) {
	db := openSerialsTestDB(t)

	if _, err := ImportCSV(context.Background(), db, nil, 1, 1, strings.NewReader("level,serial\nitem,2001\n")); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := ImportCSV(context.Background(), db, nil, 1, 1, strings.NewReader("level,serial\nitem,2002\n")); err != nil {
		t.Fatalf("second import: %v", err)
	}

	set, err := LoadSerialSet(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("load serial set: %v", err)
	}
	if len(set.Item) != 2 || set.Item[0] != "2001" || set.Item[1] != "2002" {
		t.Fatalf("expected [2001 2002], got %+v", set.Item)
	}
}

func TestImportCSV_SkipsDuplicatesAndCountsErrors(t *testing.T) {
	db := openSerialsTestDB(t)

	csvBody := "level,serial\nitem,3001\nitem,3001\npallet,3002\nitem,\n"
	summary, err := ImportCSV(context.Background(), db, nil, 1, 1, strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("import csv: %v", err)
	}
	if summary.Inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", summary.Inserted)
	}
	if summary.Skipped != 1 {
		t.Fatalf("expected 1 duplicate skipped, got %d", summary.Skipped)
	}
	if summary.Errors != 2 {
		t.Fatalf("expected 2 errors (bad level, blank serial), got %d", summary.Errors)
	}
}

func TestImportCSV_RejectsWrongHeader(t *testing.T) {
	db := openSerialsTestDB(t)

	_, err := ImportCSV(context.Background(), db, nil, 1, 1, strings.NewReader("sku,description\nitem,1\n"))
	if err == nil {
		t.Fatalf("expected header error")
	}
}

func TestCountAndClearSerials(t *testing.T) {
	db := openSerialsTestDB(t)

	csvBody := "level,serial\nitem,5001\nitem,5002\ncase,5003\nsscc,5004\n"
	if _, err := ImportCSV(context.Background(), db, nil, 1, 1, strings.NewReader(csvBody)); err != nil {
		t.Fatalf("import csv: %v", err)
	}

	counts, err := CountSerialsByLevel(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("count serials: %v", err)
	}
	if counts["item"] != 2 || counts["case"] != 1 || counts["sscc"] != 1 || counts["inner_case"] != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	deleted, err := ClearSerials(context.Background(), db, nil, 1, 1)
	if err != nil {
		t.Fatalf("clear serials: %v", err)
	}
	if deleted != 4 {
		t.Fatalf("expected 4 deleted, got %d", deleted)
	}

	counts, err = CountSerialsByLevel(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("recount serials: %v", err)
	}
	if counts["item"] != 0 || counts["sscc"] != 0 {
		t.Fatalf("expected empty pools, got %+v", counts)
	}
}
