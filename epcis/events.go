package epcis

import "time"

// CBV 1.2 business step and disposition URNs.
const (
	bizStepCommissioning = "urn:epcglobal:cbv:bizstep:commissioning"
	bizStepPacking       = "urn:epcglobal:cbv:bizstep:packing"
	bizStepShipping      = "urn:epcglobal:cbv:bizstep:shipping"

	dispActive    = "urn:epcglobal:cbv:disp:active"
	dispInTransit = "urn:epcglobal:cbv:disp:in_transit"

	bizTransactionDespatchAdvice = "urn:epcglobal:cbv:btt:desadv"

	actionAdd     = "ADD"
	actionObserve = "OBSERVE"
)

const eventTimeLayout = "2006-01-02T15:04:05Z"

// BuildEvents emits the full event list for the hierarchy in its fixed
// total order: commissioning per level (smallest unit first), aggregation
// per parent/child pairing, then the single shipping event covering all
// SSCCs.
func BuildEvents(cfg Configuration, h *Hierarchy, p GenerateParams) []any {
	eventTime := p.Now.UTC().Format(eventTimeLayout)
	readPoint := idNode(p.ReadPoint)
	bizLocation := idNode(p.BizLocation)

	events := make([]any, 0, len(h.Levels)+len(h.Pairings)+1)

	for _, lvl := range h.Levels {
		events = append(events, commissioningEvent(cfg, lvl, eventTime, readPoint, bizLocation))
	}
	for _, pairing := range h.Pairings {
		for _, group := range pairing.Groups {
			events = append(events, &AggregationEvent{
				EventTime:           eventTime,
				EventTimeZoneOffset: "+00:00",
				ParentID:            group.ParentKey,
				ChildEPCs:           EPCList{EPCs: group.ChildKeys},
				Action:              actionAdd,
				BizStep:             bizStepPacking,
				Disposition:         dispActive,
				ReadPoint:           readPoint,
				BizLocation:         bizLocation,
			})
		}
	}
	events = append(events, shippingEvent(cfg, h, p, eventTime, readPoint))
	return events
}

func commissioningEvent(cfg Configuration, lvl Level, eventTime string, readPoint, bizLocation *IDNode) *ObjectEvent {
	ev := &ObjectEvent{
		EventTime:           eventTime,
		EventTimeZoneOffset: "+00:00",
		EPCList:             EPCList{EPCs: lvl.Keys},
		Action:              actionAdd,
		BizStep:             bizStepCommissioning,
		Disposition:         dispActive,
		ReadPoint:           readPoint,
		BizLocation:         bizLocation,
	}
	// ILMD applies to trade item levels only, and only when both lot and
	// expiry are known. SSCC logistics units never carry it.
	if lvl.Kind != LevelSSCC && cfg.LotNumber != "" && cfg.ExpirationDate != "" {
		ev.Extension = &EventExtension{ILMD: &ILMD{
			LotNumber:          cfg.LotNumber,
			ItemExpirationDate: cfg.ExpirationDate,
		}}
	}
	return ev
}

// shippingEvent observes all SSCCs leaving for the receiver. One event per
// document, not per pallet.
func shippingEvent(cfg Configuration, h *Hierarchy, p GenerateParams, eventTime string, readPoint *IDNode) *ObjectEvent {
	sscc, _ := h.Level(LevelSSCC)
	ev := &ObjectEvent{
		EventTime:           eventTime,
		EventTimeZoneOffset: "+00:00",
		EPCList:             EPCList{EPCs: sscc.Keys},
		Action:              actionObserve,
		BizStep:             bizStepShipping,
		Disposition:         dispInTransit,
		ReadPoint:           readPoint,
		BizLocation:         idNode(cfg.Receiver.SGLN),
	}
	if p.DespatchAdvice != "" {
		ev.BizTransactionList = &BizTransactions{Transactions: []BizTransaction{{
			Type:  bizTransactionDespatchAdvice,
			Value: p.DespatchAdvice,
		}}}
	}
	return ev
}

func idNode(id string) *IDNode {
	if id == "" {
		return nil
	}
	return &IDNode{ID: id}
}

func formatCreationDate(t time.Time) string {
	return t.UTC().Format(eventTimeLayout)
}
