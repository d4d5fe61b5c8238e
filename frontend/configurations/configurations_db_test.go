package configurations

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/uptrace/bun"

	"serialtrace/epcis"
	"serialtrace/infrastructure/audit"
	"serialtrace/infrastructure/sqlite"
	"serialtrace/models"
)

func openConfigurationsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "configurations-test.db")
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
	return db
}

func validConfiguration() models.Configuration {
	return models.Configuration{
		Name:          "Line 1 - 30ct bottle",
		CompanyPrefix: "1234567",

		ItemsPerCase: 10,
		CasesPerSSCC: 5,
		NumberOfSSCC: 1,

		ItemIndicatorDigit: "3",
		ItemProductCode:    "000001",
		CaseIndicatorDigit: "2",
		CaseProductCode:    "000001",
		SSCCIndicatorDigit: "0",

		SenderGLN:   "0360001000017",
		ReceiverGLN: "0360002000016",

		ShipperSameAsSender: true,
	}
}

func TestCreateConfiguration_StoresAndAudits(t *testing.T) {
	db := openConfigurationsTestDB(t)
	auditSvc := audit.NewService()

	id, err := CreateConfiguration(context.Background(), db, auditSvc, 7, validConfiguration())
	if err != nil {
		t.Fatalf("create configuration: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected assigned id, got %d", id)
	}

	stored, err := LoadConfiguration(context.Background(), db, id)
	if err != nil {
		t.Fatalf("load configuration: %v", err)
	}
	if stored.CompanyPrefix != "1234567" || stored.ItemsPerCase != 10 {
		t.Fatalf("unexpected stored configuration: %+v", stored)
	}

	var auditCount int
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(1) FROM audit_logs WHERE action = 'configuration.create' AND user_id = 7`).Scan(ctx, &auditCount)
	})
	if err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("expected one audit row, got %d", auditCount)
	}
}

func TestCreateConfiguration_NormalizesNDCAndDerivesProductCode(t *testing.T) {
	db := openConfigurationsTestDB(t)

	cfg := validConfiguration()
	cfg.PackageNDC = "1234-5678-90"
	cfg.ItemProductCode = ""

	id, err := CreateConfiguration(context.Background(), db, audit.NewService(), 1, cfg)
	if err != nil {
		t.Fatalf("create configuration: %v", err)
	}

	stored, err := LoadConfiguration(context.Background(), db, id)
	if err != nil {
		t.Fatalf("load configuration: %v", err)
	}
	// Stored NDC keeps the 11-digit padded form; the derived product code
	// drops the pad and keeps the trailing digits that fit the prefix.
	if stored.PackageNDC != "01234-5678-90" {
		t.Fatalf("expected normalized NDC, got %s", stored.PackageNDC)
	}
	if stored.ItemProductCode != "567890" {
		t.Fatalf("expected derived product code 567890, got %s", stored.ItemProductCode)
	}
}

func TestCreateConfiguration_ZeroLeadingLabelerKeepsRealDigit(t *testing.T) {
	db := openConfigurationsTestDB(t)

	// 5-3-2 layout with a labeler code that genuinely starts with 0: the
	// pad lands in segment 2, and the derived product code must keep the
	// real leading zero rather than the inserted pad.
	cfg := validConfiguration()
	cfg.PackageNDC = "01234-567-89"
	cfg.ItemProductCode = ""

	id, err := CreateConfiguration(context.Background(), db, audit.NewService(), 1, cfg)
	if err != nil {
		t.Fatalf("create configuration: %v", err)
	}

	stored, err := LoadConfiguration(context.Background(), db, id)
	if err != nil {
		t.Fatalf("load configuration: %v", err)
	}
	if stored.PackageNDC != "01234-0567-89" {
		t.Fatalf("expected normalized NDC 01234-0567-89, got %s", stored.PackageNDC)
	}
	if stored.ItemProductCode != "456789" {
		t.Fatalf("expected derived product code 456789, got %s", stored.ItemProductCode)
	}
}

func TestCreateConfiguration_DuplicateNameRejected(t *testing.T) {
	db := openConfigurationsTestDB(t)

	if _, err := CreateConfiguration(context.Background(), db, audit.NewService(), 1, validConfiguration()); err != nil {
		t.Fatalf("seed configuration: %v", err)
	}
	dupe := validConfiguration()
	dupe.Name = "LINE 1 - 30CT BOTTLE"
	_, err := CreateConfiguration(context.Background(), db, audit.NewService(), 1, dupe)
	if !errors.Is(err, ErrNameExists) {
		t.Fatalf("expected ErrNameExists, got %v", err)
	}
}

func TestCreateConfiguration_RejectsBadIdentifierLength(t *testing.T) {
	db := openConfigurationsTestDB(t)

	cfg := validConfiguration()
	cfg.ItemProductCode = "00001"
	_, err := CreateConfiguration(context.Background(), db, audit.NewService(), 1, cfg)
	if err == nil {
		t.Fatalf("expected identifier validation error")
	}
	if kind, ok := epcis.KindOf(err); !ok || kind != epcis.KindInvalidIdentifier {
		t.Fatalf("expected invalid identifier kind, got %v", err)
	}
}

func TestUpdateConfiguration_ReplacesRowAndAudits(t *testing.T) {
	db := openConfigurationsTestDB(t)
	auditSvc := audit.NewService()

	id, err := CreateConfiguration(context.Background(), db, auditSvc, 1, validConfiguration())
	if err != nil {
		t.Fatalf("seed configuration: %v", err)
	}

	updated := validConfiguration()
	updated.ItemsPerCase = 24
	updated.LotNumber = "LOT99"
	if err := UpdateConfiguration(context.Background(), db, auditSvc, 1, id, updated); err != nil {
		t.Fatalf("update configuration: %v", err)
	}

	stored, err := LoadConfiguration(context.Background(), db, id)
	if err != nil {
		t.Fatalf("load configuration: %v", err)
	}
	if stored.ItemsPerCase != 24 || stored.LotNumber != "LOT99" {
		t.Fatalf("update not applied: %+v", stored)
	}

	var auditCount int
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(1) FROM audit_logs WHERE action = 'configuration.update'`).Scan(ctx, &auditCount)
	})
	if err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("expected one update audit row, got %d", auditCount)
	}
}

func TestEngineConfiguration_MapsPartiesAndLevels(t *testing.T) {
	m := validConfiguration()
	m.SenderName = "Alpha Pharma"
	m.ReceiverSGLN = "urn:epc:id:sgln:0360002.00001.0"
	engineCfg := EngineConfiguration(m)

	if engineCfg.Item.IndicatorDigit != "3" || engineCfg.Case.ProductCode != "000001" {
		t.Fatalf("level identity not mapped: %+v", engineCfg)
	}
	if engineCfg.Sender.Name != "Alpha Pharma" || engineCfg.Receiver.SGLN != "urn:epc:id:sgln:0360002.00001.0" {
		t.Fatalf("parties not mapped: %+v", engineCfg)
	}
	if !engineCfg.ShipperSameAsSender {
		t.Fatalf("shipper flag not mapped")
	}
	if engineCfg.EffectiveShipper().Name != "Alpha Pharma" {
		t.Fatalf("effective shipper should resolve to sender")
	}
}
