package epcis

import (
	"strings"
	"testing"
)

func TestGenerate_Filename(t *testing.T) {
	cfg := testConfig()
	_, filename, err := Generate(cfg, testSerials(cfg), testParams())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if filename != "epcis-0360001000017-0360002000016-260825.xml" {
		t.Fatalf("unexpected filename: %s", filename)
	}
}

func TestGenerate_DocumentShape(t *testing.T) {
	cfg := testConfig()
	cfg.PackageNDC = "01234-5678-90"
	doc, _, err := Generate(cfg, testSerials(cfg), testParams())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if doc.SchemaVersion != "1.2" {
		t.Fatalf("expected schemaVersion 1.2, got %s", doc.SchemaVersion)
	}
	if doc.CreationDate != "2026-08-25T14:30:00Z" {
		t.Fatalf("unexpected creationDate: %s", doc.CreationDate)
	}
	if doc.EventCount() != 10 {
		t.Fatalf("expected 10 events, got %d", doc.EventCount())
	}
	if len(doc.Header.Extension.MasterData.Vocabularies) != 2 {
		t.Fatalf("expected EPCClass + Location vocabularies, got %d", len(doc.Header.Extension.MasterData.Vocabularies))
	}
}

func TestGenerate_SerializedXML(t *testing.T) {
	cfg := testConfig()
	cfg.PackageNDC = "01234-5678-90"
	doc, _, err := Generate(cfg, testSerials(cfg), testParams())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	raw, err := doc.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(raw)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<epcis:EPCISDocument`,
		`xmlns:epcis="urn:epcglobal:epcis:xsd:1"`,
		`schemaVersion="1.2"`,
		`<sbdh:StandardBusinessDocumentHeader>`,
		`<extension>`,
		`<EPCISMasterData>`,
		`<Vocabulary type="urn:epcglobal:epcis:vtype:EPCClass">`,
		`<VocabularyElement id="urn:epc:idpat:sgtin:1234567.3000001.*">`,
		`<attribute id="urn:epcglobal:cbv:mda#additionalTradeItemIdentification">01234567890</attribute>`,
		`<EPCISBody>`,
		`<EventList>`,
		`<epc>urn:epc:id:sgtin:1234567.3000001.10001</epc>`,
		`<parentID>urn:epc:id:sscc:1234567.090001</parentID>`,
		`<cbvmda:lotNumber>LOT42</cbvmda:lotNumber>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("serialized document missing %q", want)
		}
	}

	if got := strings.Count(out, "<ObjectEvent>"); got != 4 {
		t.Fatalf("expected 4 ObjectEvents, got %d", got)
	}
	if got := strings.Count(out, "<AggregationEvent>"); got != 6 {
		t.Fatalf("expected 6 AggregationEvents, got %d", got)
	}
	// Event order: the first event opens before the first aggregation and
	// the shipping disposition appears after the last aggregation.
	firstObject := strings.Index(out, "<ObjectEvent>")
	firstAgg := strings.Index(out, "<AggregationEvent>")
	lastAgg := strings.LastIndex(out, "<AggregationEvent>")
	shipping := strings.Index(out, "urn:epcglobal:cbv:disp:in_transit")
	if firstObject > firstAgg {
		t.Fatalf("commissioning events must precede aggregation events")
	}
	if shipping < lastAgg {
		t.Fatalf("shipping event must be last")
	}
}

func TestGenerate_AllOrNothing(t *testing.T) {
	cfg := testConfig()
	set := testSerials(cfg)
	set.SSCC = nil
	doc, filename, err := Generate(cfg, set, testParams())
	if err == nil {
		t.Fatalf("expected error for missing SSCC serials")
	}
	if doc != nil || filename != "" {
		t.Fatalf("no partial document may be returned on failure")
	}
	if kind, ok := KindOf(err); !ok || kind != KindCountMismatch {
		t.Fatalf("expected structured count mismatch, got %v", err)
	}
}
