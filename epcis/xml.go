package epcis

import "encoding/xml"

// XML tree for EPCIS 1.2 documents. Element and attribute names follow the
// EPCIS 1.2 / CBV 1.2 schemas; prefixed names are written literally and the
// prefixes are declared on the document root.

const (
	nsEPCIS  = "urn:epcglobal:epcis:xsd:1"
	nsSBDH   = "http://www.unece.org/cefact/namespaces/StandardBusinessDocumentHeader"
	nsCBVMDA = "urn:epcglobal:cbv:mda"
)

// Document is the in-memory EPCIS document tree. Built once per generation
// call, serialized, and discarded.
type Document struct {
	XMLName       xml.Name `xml:"epcis:EPCISDocument"`
	XmlnsEPCIS    string   `xml:"xmlns:epcis,attr"`
	XmlnsSBDH     string   `xml:"xmlns:sbdh,attr"`
	XmlnsCBVMDA   string   `xml:"xmlns:cbvmda,attr"`
	SchemaVersion string   `xml:"schemaVersion,attr"`
	CreationDate  string   `xml:"creationDate,attr"`
	Header        Header   `xml:"EPCISHeader"`
	Body          Body     `xml:"EPCISBody"`
}

type Header struct {
	SBDH      SBDH            `xml:"sbdh:StandardBusinessDocumentHeader"`
	Extension HeaderExtension `xml:"extension"`
}

// HeaderExtension wraps EPCISMasterData; the GS1 extension convention puts
// master data under EPCISHeader/extension, not directly in the header.
type HeaderExtension struct {
	MasterData MasterData `xml:"EPCISMasterData"`
}

type MasterData struct {
	Vocabularies []Vocabulary `xml:"VocabularyList>Vocabulary"`
}

type Vocabulary struct {
	Type     string              `xml:"type,attr"`
	Elements []VocabularyElement `xml:"VocabularyElementList>VocabularyElement"`
}

type VocabularyElement struct {
	ID         string           `xml:"id,attr"`
	Attributes []VocabAttribute `xml:"attribute"`
}

type VocabAttribute struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

type SBDH struct {
	HeaderVersion          string        `xml:"sbdh:HeaderVersion"`
	Sender                 SBDHParty     `xml:"sbdh:Sender"`
	Receiver               SBDHParty     `xml:"sbdh:Receiver"`
	DocumentIdentification SBDHDocument  `xml:"sbdh:DocumentIdentification"`
	BusinessScope          *BusinessScope `xml:"sbdh:BusinessScope,omitempty"`
}

type SBDHParty struct {
	Identifier SBDHIdentifier `xml:"sbdh:Identifier"`
}

type SBDHIdentifier struct {
	Authority string `xml:"Authority,attr"`
	Value     string `xml:",chardata"`
}

type SBDHDocument struct {
	Standard            string `xml:"sbdh:Standard"`
	TypeVersion         string `xml:"sbdh:TypeVersion"`
	InstanceIdentifier  string `xml:"sbdh:InstanceIdentifier"`
	Type                string `xml:"sbdh:Type"`
	CreationDateAndTime string `xml:"sbdh:CreationDateAndTime"`
}

type BusinessScope struct {
	Scopes []Scope `xml:"sbdh:Scope"`
}

type Scope struct {
	Type               string `xml:"sbdh:Type"`
	InstanceIdentifier string `xml:"sbdh:InstanceIdentifier"`
}

type Body struct {
	EventList EventList `xml:"EventList"`
}

// EventList holds ObjectEvents and AggregationEvents in emission order.
// Each concrete event type carries its own XMLName so the mixed slice
// serializes with the right element names.
type EventList struct {
	Events []any
}

type ObjectEvent struct {
	XMLName             xml.Name         `xml:"ObjectEvent"`
	EventTime           string           `xml:"eventTime"`
	EventTimeZoneOffset string           `xml:"eventTimeZoneOffset"`
	EPCList             EPCList          `xml:"epcList"`
	Action              string           `xml:"action"`
	BizStep             string           `xml:"bizStep"`
	Disposition         string           `xml:"disposition"`
	ReadPoint           *IDNode          `xml:"readPoint,omitempty"`
	BizLocation         *IDNode          `xml:"bizLocation,omitempty"`
	BizTransactionList  *BizTransactions `xml:"bizTransactionList,omitempty"`
	Extension           *EventExtension  `xml:"extension,omitempty"`
}

type AggregationEvent struct {
	XMLName             xml.Name `xml:"AggregationEvent"`
	EventTime           string   `xml:"eventTime"`
	EventTimeZoneOffset string   `xml:"eventTimeZoneOffset"`
	ParentID            string   `xml:"parentID"`
	ChildEPCs           EPCList  `xml:"childEPCs"`
	Action              string   `xml:"action"`
	BizStep             string   `xml:"bizStep"`
	Disposition         string   `xml:"disposition"`
	ReadPoint           *IDNode  `xml:"readPoint,omitempty"`
	BizLocation         *IDNode  `xml:"bizLocation,omitempty"`
}

type EPCList struct {
	EPCs []string `xml:"epc"`
}

type IDNode struct {
	ID string `xml:"id"`
}

type BizTransactions struct {
	Transactions []BizTransaction `xml:"bizTransaction"`
}

type BizTransaction struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// EventExtension carries the ILMD block on commissioning events. The whole
// extension is omitted when no ILMD applies; an empty element is never
// written.
type EventExtension struct {
	ILMD *ILMD `xml:"ilmd,omitempty"`
}

type ILMD struct {
	LotNumber          string `xml:"cbvmda:lotNumber"`
	ItemExpirationDate string `xml:"cbvmda:itemExpirationDate"`
}
