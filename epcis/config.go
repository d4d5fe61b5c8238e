package epcis

import "time"

// LevelKind identifies one level of the packaging hierarchy.
type LevelKind string

const (
	LevelItem      LevelKind = "item"
	LevelInnerCase LevelKind = "inner_case"
	LevelCase      LevelKind = "case"
	LevelSSCC      LevelKind = "sscc"
)

// PackLevel is the GS1 identity of one SGTIN level.
type PackLevel struct {
	IndicatorDigit string
	ProductCode    string
}

// Party is one trading partner (sender, receiver or shipper).
type Party struct {
	Name          string
	CompanyPrefix string
	GLN           string
	SGLN          string
	Street        string
	City          string
	State         string
	PostalCode    string
	CountryCode   string
}

// Configuration is the immutable input describing the hierarchy to build.
// Callers validate types and presence; the engine re-checks only the
// identity and count invariants it depends on.
type Configuration struct {
	CompanyPrefix string

	// Fan-outs. CasesPerSSCC == 0 means items pack directly under SSCCs.
	ItemsPerCase      int
	InnerCasesEnabled bool
	ItemsPerInnerCase int
	InnerCasesPerCase int
	CasesPerSSCC      int
	NumberOfSSCC      int

	Item               PackLevel
	InnerCase          PackLevel
	Case               PackLevel
	SSCCIndicatorDigit string

	PackageNDC            string
	RegulatedProductName  string
	ManufacturerName      string
	DosageFormType        string
	StrengthDescription   string
	NetContentDescription string
	LotNumber             string
	ExpirationDate        string

	Sender              Party
	Receiver            Party
	Shipper             Party
	ShipperSameAsSender bool
}

// EffectiveShipper resolves the shipper party, honoring ShipperSameAsSender.
func (c Configuration) EffectiveShipper() Party {
	if c.ShipperSameAsSender {
		return c.Sender
	}
	return c.Shipper
}

// SerialNumberSet holds the ordered per-level serial pools. Order is
// significant: serials fill hierarchy slots in sequence.
type SerialNumberSet struct {
	SSCC      []string
	Case      []string
	InnerCase []string
	Item      []string
}

// GenerateParams carries per-call inputs that are not part of the stored
// configuration.
type GenerateParams struct {
	ReadPoint      string
	BizLocation    string
	DespatchAdvice string
	Now            time.Time
}
