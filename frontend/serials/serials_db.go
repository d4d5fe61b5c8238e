package serials

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/uptrace/bun"

	"serialtrace/epcis"
	"serialtrace/infrastructure/audit"
	"serialtrace/infrastructure/sqlite"
)

var validLevels = map[string]bool{
	string(epcis.LevelItem):      true,
	string(epcis.LevelInnerCase): true,
	string(epcis.LevelCase):      true,
	string(epcis.LevelSSCC):      true,
}

// CountSerialsByLevel returns the pool size per level, with zero entries
// for levels that have no serials yet.
func CountSerialsByLevel(ctx context.Context, db *sqlite.DB, configurationID int64) (map[string]int, error) {
	type levelCount struct {
		Level string `bun:"level"`
		N     int    `bun:"n"`
	}
	rows := make([]levelCount, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT level, COUNT(1) AS n
FROM serial_numbers
WHERE configuration_id = ?
GROUP BY level`, configurationID).Scan(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, 4)
	for level := range validLevels {
		counts[level] = 0
	}
	for _, row := range rows {
		counts[row.Level] = row.N
	}
	return counts, nil
}

// LoadSerialSet returns the per-level pools in upload order.
func LoadSerialSet(ctx context.Context, db *sqlite.DB, configurationID int64) (epcis.SerialNumberSet, error) {
	type serialRow struct {
		Level  string `bun:"level"`
		Serial string `bun:"serial"`
	}
	rows := make([]serialRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT level, serial
FROM serial_numbers
WHERE configuration_id = ?
ORDER BY level ASC, seq ASC`, configurationID).Scan(ctx, &rows)
	})
	if err != nil {
		return epcis.SerialNumberSet{}, err
	}

	var set epcis.SerialNumberSet
	for _, row := range rows {
		switch epcis.LevelKind(row.Level) {
		case epcis.LevelItem:
			set.Item = append(set.Item, row.Serial)
		case epcis.LevelInnerCase:
			set.InnerCase = append(set.InnerCase, row.Serial)
		case epcis.LevelCase:
			set.Case = append(set.Case, row.Serial)
		case epcis.LevelSSCC:
			set.SSCC = append(set.SSCC, row.Serial)
		}
	}
	return set, nil
}

// ImportCSV reads `level,serial` rows into the configuration's pools.
// Rows append after existing serials in upload order; duplicates within
// one pool are skipped.
func ImportCSV(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID, configurationID int64, reader io.Reader) (ImportSummary, error) {
	summary := ImportSummary{}
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return summary, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "level") || !strings.EqualFold(strings.TrimSpace(header[1]), "serial") {
		return summary, fmt.Errorf("invalid CSV header; expected level,serial")
	}

	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		nextSeq := make(map[string]int64, 4)
		for {
			record, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				summary.Errors++
				continue
			}
			if len(record) < 2 {
				summary.Errors++
				continue
			}
			level := strings.ToLower(strings.TrimSpace(record[0]))
			serial := strings.TrimSpace(record[1])
			if serial == "" || !validLevels[level] {
				summary.Errors++
				continue
			}

			seq, ok := nextSeq[level]
			if !ok {
				if err := tx.NewRaw(`
SELECT COALESCE(MAX(seq), 0) FROM serial_numbers
WHERE configuration_id = ? AND level = ?`, configurationID, level).Scan(ctx, &seq); err != nil {
					return err
				}
			}
			seq++

			res, err := tx.ExecContext(ctx, `
INSERT INTO serial_numbers (configuration_id, level, seq, serial, created_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(configuration_id, level, serial) DO NOTHING`, configurationID, level, seq, serial)
			if err != nil {
				summary.Errors++
				continue
			}
			affected, _ := res.RowsAffected()
			if affected == 0 {
				summary.Skipped++
				continue
			}
			summary.Inserted++
			nextSeq[level] = seq
		}

		if auditSvc != nil {
			after := map[string]any{"inserted": summary.Inserted, "skipped": summary.Skipped, "errors": summary.Errors}
			if err := auditSvc.Write(ctx, tx, userID, "serials.import", "configuration", fmt.Sprintf("%d", configurationID), nil, after); err != nil {
				return err
			}
		}
		return nil
	})
	return summary, err
}

// ClearSerials empties every pool of the configuration.
func ClearSerials(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID, configurationID int64) (int64, error) {
	var deleted int64
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM serial_numbers WHERE configuration_id = ?`, configurationID)
		if err != nil {
			return err
		}
		deleted, _ = res.RowsAffected()
		if auditSvc != nil {
			after := map[string]any{"deleted": deleted}
			return auditSvc.Write(ctx, tx, userID, "serials.clear", "configuration", fmt.Sprintf("%d", configurationID), nil, after)
		}
		return nil
	})
	return deleted, err
}
