package epcis

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

// Generate builds the complete EPCIS 1.2 document for the configuration
// and serial pools. It returns the document tree and the download filename.
// Generation is pure and all-or-nothing: on error no document is returned.
func Generate(cfg Configuration, set SerialNumberSet, p GenerateParams) (*Document, string, error) {
	if p.Now.IsZero() {
		p.Now = time.Now()
	}

	h, err := BuildHierarchy(cfg, set)
	if err != nil {
		return nil, "", err
	}

	doc := &Document{
		XmlnsEPCIS:    nsEPCIS,
		XmlnsSBDH:     nsSBDH,
		XmlnsCBVMDA:   nsCBVMDA,
		SchemaVersion: "1.2",
		CreationDate:  formatCreationDate(p.Now),
		Header: Header{
			SBDH:      BuildSBDH(cfg, p),
			Extension: HeaderExtension{MasterData: BuildMasterData(cfg, h)},
		},
		Body: Body{EventList: EventList{Events: BuildEvents(cfg, h, p)}},
	}
	return doc, Filename(cfg, p.Now), nil
}

// Filename computes the download name: epcis-{senderGLN}-{receiverGLN}-{YYMMDD}.xml.
func Filename(cfg Configuration, now time.Time) string {
	return fmt.Sprintf("epcis-%s-%s-%s.xml", cfg.Sender.GLN, cfg.Receiver.GLN, now.UTC().Format("060102"))
}

// EventCount reports the number of events in the assembled document.
func (d *Document) EventCount() int {
	return len(d.Body.EventList.Events)
}

// Marshal serializes the document as indented UTF-8 XML with the standard
// declaration.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode EPCIS document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
