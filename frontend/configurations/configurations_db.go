package configurations

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/uptrace/bun"

	"serialtrace/epcis"
	"serialtrace/infrastructure/audit"
	"serialtrace/infrastructure/sqlite"
	"serialtrace/models"
)

var (
	ErrNameRequired   = errors.New("configuration name is required")
	ErrNameExists     = errors.New("configuration name already exists")
	ErrPrefixRequired = errors.New("company prefix is required")
)

func ListConfigurations(ctx context.Context, db *sqlite.DB) ([]ConfigurationView, error) {
	views := make([]ConfigurationView, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT id, name, number_of_sscc, items_per_case, cases_per_sscc, receiver_name
FROM configurations ORDER BY name ASC`).Scan(ctx, &views)
	})
	return views, err
}

func LoadConfiguration(ctx context.Context, db *sqlite.DB, id int64) (models.Configuration, error) {
	var cfg models.Configuration
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&cfg).Where("c.id = ?", id).Limit(1).Scan(ctx)
	})
	return cfg, err
}

// CreateConfiguration validates, normalizes the package NDC and stores a
// new configuration. The item product code is derived from the NDC when
// left blank.
func CreateConfiguration(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, cfg models.Configuration) (int64, error) {
	if err := prepareConfiguration(&cfg); err != nil {
		return 0, err
	}

	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var existing int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM configurations WHERE LOWER(name) = ?`, strings.ToLower(cfg.Name)).Scan(ctx, &existing); err != nil {
			return err
		}
		if existing > 0 {
			return ErrNameExists
		}
		if _, err := tx.NewInsert().Model(&cfg).Exec(ctx); err != nil {
			return err
		}
		return auditSvc.Write(ctx, tx, userID, "configuration.create", "configuration", strconv.FormatInt(cfg.ID, 10), nil, cfg)
	})
	if err != nil {
		return 0, err
	}
	return cfg.ID, nil
}

// UpdateConfiguration replaces the stored configuration, keeping the old
// row in the audit trail.
func UpdateConfiguration(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID, id int64, cfg models.Configuration) error {
	if err := prepareConfiguration(&cfg); err != nil {
		return err
	}
	cfg.ID = id

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.Configuration
		if err := tx.NewSelect().Model(&before).Where("c.id = ?", id).Limit(1).Scan(ctx); err != nil {
			return err
		}
		var clash int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM configurations WHERE LOWER(name) = ? AND id != ?`, strings.ToLower(cfg.Name), id).Scan(ctx, &clash); err != nil {
			return err
		}
		if clash > 0 {
			return ErrNameExists
		}
		if _, err := tx.NewUpdate().
			Model(&cfg).
			WherePK().
			ExcludeColumn("created_at").
			Exec(ctx); err != nil {
			return err
		}
		return auditSvc.Write(ctx, tx, userID, "configuration.update", "configuration", strconv.FormatInt(id, 10), before, cfg)
	})
}

func prepareConfiguration(cfg *models.Configuration) error {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return ErrNameRequired
	}
	cfg.CompanyPrefix = strings.TrimSpace(cfg.CompanyPrefix)
	if cfg.CompanyPrefix == "" {
		return ErrPrefixRequired
	}

	if strings.TrimSpace(cfg.PackageNDC) != "" {
		// Derive the product code from the 10-digit form before the pad
		// goes in; the padded NDC cannot be inverted when the labeler code
		// itself starts with 0.
		if strings.TrimSpace(cfg.ItemProductCode) == "" {
			productCode, err := epcis.NDCProductCode(cfg.PackageNDC)
			if err != nil {
				return err
			}
			// GS1 product code is the NDC digits minus the leading digits
			// covered by the company prefix and indicator.
			need := 14 - len(cfg.CompanyPrefix) - 1
			if need <= 0 || need > len(productCode) {
				return fmt.Errorf("cannot derive a %d-digit product code from NDC %s", need, cfg.PackageNDC)
			}
			cfg.ItemProductCode = productCode[len(productCode)-need:]
		}

		normalized, err := epcis.NormalizeNDC(cfg.PackageNDC)
		if err != nil {
			return err
		}
		cfg.PackageNDC = normalized
	}

	// Engine validation catches identity and count problems before save.
	engineCfg := EngineConfiguration(*cfg)
	if _, err := epcis.BuildKey(epcis.LevelItem, engineCfg, "0"); err != nil {
		return err
	}
	if cfg.CasesPerSSCC > 0 {
		if _, err := epcis.BuildKey(epcis.LevelCase, engineCfg, "0"); err != nil {
			return err
		}
	}
	if cfg.InnerCasesEnabled {
		if _, err := epcis.BuildKey(epcis.LevelInnerCase, engineCfg, "0"); err != nil {
			return err
		}
	}
	if _, err := epcis.BuildKey(epcis.LevelSSCC, engineCfg, "0"); err != nil {
		return err
	}
	return nil
}

// EngineConfiguration maps the stored row onto the document engine input.
func EngineConfiguration(m models.Configuration) epcis.Configuration {
	return epcis.Configuration{
		CompanyPrefix:     m.CompanyPrefix,
		ItemsPerCase:      m.ItemsPerCase,
		InnerCasesEnabled: m.InnerCasesEnabled,
		ItemsPerInnerCase: m.ItemsPerInnerCase,
		InnerCasesPerCase: m.InnerCasesPerCase,
		CasesPerSSCC:      m.CasesPerSSCC,
		NumberOfSSCC:      m.NumberOfSSCC,

		Item:               epcis.PackLevel{IndicatorDigit: m.ItemIndicatorDigit, ProductCode: m.ItemProductCode},
		InnerCase:          epcis.PackLevel{IndicatorDigit: m.InnerCaseIndicatorDigit, ProductCode: m.InnerCaseProductCode},
		Case:               epcis.PackLevel{IndicatorDigit: m.CaseIndicatorDigit, ProductCode: m.CaseProductCode},
		SSCCIndicatorDigit: m.SSCCIndicatorDigit,

		PackageNDC:            m.PackageNDC,
		RegulatedProductName:  m.RegulatedProductName,
		ManufacturerName:      m.ManufacturerName,
		DosageFormType:        m.DosageFormType,
		StrengthDescription:   m.StrengthDescription,
		NetContentDescription: m.NetContentDescription,
		LotNumber:             m.LotNumber,
		ExpirationDate:        m.ExpirationDate,

		Sender: epcis.Party{
			Name: m.SenderName, CompanyPrefix: m.SenderCompanyPrefix,
			GLN: m.SenderGLN, SGLN: m.SenderSGLN,
			Street: m.SenderStreet, City: m.SenderCity, State: m.SenderState,
			PostalCode: m.SenderPostalCode, CountryCode: m.SenderCountryCode,
		},
		Receiver: epcis.Party{
			Name: m.ReceiverName, CompanyPrefix: m.ReceiverCompanyPrefix,
			GLN: m.ReceiverGLN, SGLN: m.ReceiverSGLN,
			Street: m.ReceiverStreet, City: m.ReceiverCity, State: m.ReceiverState,
			PostalCode: m.ReceiverPostalCode, CountryCode: m.ReceiverCountryCode,
		},
		Shipper: epcis.Party{
			Name: m.ShipperName, CompanyPrefix: m.ShipperCompanyPrefix,
			GLN: m.ShipperGLN, SGLN: m.ShipperSGLN,
			Street: m.ShipperStreet, City: m.ShipperCity, State: m.ShipperState,
			PostalCode: m.ShipperPostalCode, CountryCode: m.ShipperCountryCode,
		},
		ShipperSameAsSender: m.ShipperSameAsSender,
	}
}
