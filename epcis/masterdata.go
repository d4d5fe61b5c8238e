package epcis

import (
	"fmt"
	"strings"
)

const (
	vocabTypeEPCClass = "urn:epcglobal:epcis:vtype:EPCClass"
	vocabTypeLocation = "urn:epcglobal:epcis:vtype:Location"

	mdaPrefix = "urn:epcglobal:cbv:mda#"
)

// BuildMasterData assembles the EPCISMasterData vocabularies for the
// active hierarchy: one EPCClass element per trade item level (smallest
// unit first) and one Location element per distinct partner GLN.
func BuildMasterData(cfg Configuration, h *Hierarchy) MasterData {
	md := MasterData{}
	if classes := epcClassVocabulary(cfg, h); len(classes.Elements) > 0 {
		md.Vocabularies = append(md.Vocabularies, classes)
	}
	if locations := locationVocabulary(cfg); len(locations.Elements) > 0 {
		md.Vocabularies = append(md.Vocabularies, locations)
	}
	return md
}

func epcClassVocabulary(cfg Configuration, h *Hierarchy) Vocabulary {
	vocab := Vocabulary{Type: vocabTypeEPCClass}
	// h.Levels is already ordered Item, [Inner Case], [Case], SSCC; the
	// EPCClass list reuses that order and skips the logistics level.
	for _, lvl := range h.Levels {
		if lvl.Kind == LevelSSCC {
			continue
		}
		identity, _ := levelIdentity(lvl.Kind, cfg)
		vocab.Elements = append(vocab.Elements, VocabularyElement{
			ID:         EPCClassPattern(cfg.CompanyPrefix, identity),
			Attributes: epcClassAttributes(cfg),
		})
	}
	return vocab
}

func epcClassAttributes(cfg Configuration) []VocabAttribute {
	attrs := make([]VocabAttribute, 0, 6)
	if cfg.PackageNDC != "" {
		attrs = append(attrs,
			VocabAttribute{ID: mdaPrefix + "additionalTradeItemIdentification", Value: strings.ReplaceAll(cfg.PackageNDC, "-", "")},
			VocabAttribute{ID: mdaPrefix + "additionalTradeItemIdentificationTypeCode", Value: "FDA_NDC_11"},
		)
	}
	for _, attr := range []struct{ id, value string }{
		{"regulatedProductName", cfg.RegulatedProductName},
		{"manufacturerOfTradeItemPartyName", cfg.ManufacturerName},
		{"dosageFormType", cfg.DosageFormType},
		{"strengthDescription", cfg.StrengthDescription},
		{"netContentDescription", cfg.NetContentDescription},
	} {
		if attr.value != "" {
			attrs = append(attrs, VocabAttribute{ID: mdaPrefix + attr.id, Value: attr.value})
		}
	}
	return attrs
}

// locationVocabulary emits one element per distinct GLN among sender,
// receiver and shipper, in that order. The shipper honors the
// same-as-sender flag, which collapses it into the sender element.
func locationVocabulary(cfg Configuration) Vocabulary {
	vocab := Vocabulary{Type: vocabTypeLocation}
	seen := make(map[string]bool, 3)
	for _, party := range []Party{cfg.Sender, cfg.Receiver, cfg.EffectiveShipper()} {
		if party.GLN == "" || seen[party.GLN] {
			continue
		}
		seen[party.GLN] = true
		vocab.Elements = append(vocab.Elements, locationElement(party))
	}
	return vocab
}

func locationElement(party Party) VocabularyElement {
	attrs := make([]VocabAttribute, 0, 6)
	for _, attr := range []struct{ id, value string }{
		{"name", party.Name},
		{"streetAddressOne", party.Street},
		{"city", party.City},
		{"state", party.State},
		{"postalCode", party.PostalCode},
		{"countryCode", party.CountryCode},
	} {
		if attr.value != "" {
			attrs = append(attrs, VocabAttribute{ID: mdaPrefix + attr.id, Value: attr.value})
		}
	}
	return VocabularyElement{ID: party.SGLN, Attributes: attrs}
}

// BuildSBDH produces the standard business document header identifying the
// exchange parties and this document instance.
func BuildSBDH(cfg Configuration, p GenerateParams) SBDH {
	created := p.Now.UTC()
	sbdh := SBDH{
		HeaderVersion: "1.0",
		Sender:        SBDHParty{Identifier: SBDHIdentifier{Authority: "SGLN", Value: cfg.Sender.GLN}},
		Receiver:      SBDHParty{Identifier: SBDHIdentifier{Authority: "SGLN", Value: cfg.Receiver.GLN}},
		DocumentIdentification: SBDHDocument{
			Standard:            "EPCglobal",
			TypeVersion:         "1.0",
			InstanceIdentifier:  fmt.Sprintf("%s-%s", cfg.Sender.GLN, created.Format("20060102150405")),
			Type:                "Events",
			CreationDateAndTime: formatCreationDate(created),
		},
	}
	if p.DespatchAdvice != "" {
		sbdh.BusinessScope = &BusinessScope{Scopes: []Scope{{
			Type:               "DespatchAdvice",
			InstanceIdentifier: p.DespatchAdvice,
		}}}
	}
	return sbdh
}
