package epcis

import (
	"fmt"
	"strings"
)

// GTIN-14 payload: company prefix + indicator digit + product code must
// total 14 digits so every key under one company prefix shares a reference
// length (a 7-digit prefix pairs with a 6-digit product code).
const gtinPayloadDigits = 14

// BuildKey converts one serial at the given level into its GS1 URN.
func BuildKey(level LevelKind, cfg Configuration, serial string) (string, error) {
	if strings.TrimSpace(cfg.CompanyPrefix) == "" {
		return "", invalidIdentifier("companyPrefix", "company prefix is required")
	}
	if !allDigits(cfg.CompanyPrefix) {
		return "", invalidIdentifier("companyPrefix", "company prefix must be numeric, got %q", cfg.CompanyPrefix)
	}
	if strings.TrimSpace(serial) == "" {
		return "", invalidIdentifier(string(level)+".serial", "serial is required")
	}

	if level == LevelSSCC {
		if strings.TrimSpace(cfg.SSCCIndicatorDigit) == "" {
			return "", invalidIdentifier("ssccIndicatorDigit", "SSCC extension digit is required")
		}
		return ssccURN(cfg.CompanyPrefix, cfg.SSCCIndicatorDigit, serial), nil
	}

	identity, field := levelIdentity(level, cfg)
	if strings.TrimSpace(identity.IndicatorDigit) == "" {
		return "", invalidIdentifier(field+".indicatorDigit", "indicator digit is required")
	}
	if strings.TrimSpace(identity.ProductCode) == "" {
		return "", invalidIdentifier(field+".productCode", "product code is required")
	}
	payload := len(cfg.CompanyPrefix) + len(identity.IndicatorDigit) + len(identity.ProductCode)
	if payload != gtinPayloadDigits {
		return "", invalidIdentifier(field+".productCode",
			"company prefix + indicator + product code must be %d digits, got %d", gtinPayloadDigits, payload)
	}
	return sgtinURN(cfg.CompanyPrefix, identity.IndicatorDigit, identity.ProductCode, serial), nil
}

func levelIdentity(level LevelKind, cfg Configuration) (PackLevel, string) {
	switch level {
	case LevelInnerCase:
		return cfg.InnerCase, "innerCase"
	case LevelCase:
		return cfg.Case, "case"
	default:
		return cfg.Item, "item"
	}
}

func sgtinURN(companyPrefix, indicator, productCode, serial string) string {
	return fmt.Sprintf("urn:epc:id:sgtin:%s.%s%s.%s", companyPrefix, indicator, productCode, serial)
}

func ssccURN(companyPrefix, extension, serial string) string {
	return fmt.Sprintf("urn:epc:id:sscc:%s.%s%s", companyPrefix, extension, serial)
}

// EPCClassPattern is the wildcard-serial idpat URN used by the EPCClass
// vocabulary.
func EPCClassPattern(companyPrefix string, identity PackLevel) string {
	return fmt.Sprintf("urn:epc:idpat:sgtin:%s.%s%s.*", companyPrefix, identity.IndicatorDigit, identity.ProductCode)
}

// SSCC18 renders the 18-digit SSCC barcode payload: extension digit +
// company prefix + serial padded to 16 digits + mod-10 check digit.
func SSCC18(companyPrefix, extension, serial string) (string, error) {
	if !allDigits(companyPrefix) || !allDigits(extension) || !allDigits(serial) {
		return "", invalidIdentifier("sscc", "SSCC-18 requires numeric extension, prefix and serial")
	}
	body := extension + companyPrefix + serial
	if len(body) > 17 {
		return "", invalidIdentifier("sscc", "SSCC payload longer than 17 digits: %q", body)
	}
	// Zero-pad the serial reference so the payload is exactly 17 digits.
	pad := strings.Repeat("0", 17-len(body))
	body = extension + companyPrefix + pad + serial
	return body + gs1CheckDigit(body), nil
}

func gs1CheckDigit(digits string) string {
	sum := 0
	// Rightmost payload digit carries weight 3.
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	check := (10 - sum%10) % 10
	return string(rune('0' + check))
}

// NormalizeNDC converts a 10-digit FDA NDC (4-4-2, 5-3-2 or 5-4-1) into the
// 11-digit 5-4-2 form by inserting the padding zero into the short segment.
// An already 11-digit 5-4-2 NDC passes through unchanged. The returned
// value keeps the pad; see NDCProductCode for the stripped counterpart.
func NormalizeNDC(ndc string) (string, error) {
	segs, err := ndcSegments(ndc)
	if err != nil {
		return "", err
	}
	l1, l2, l3 := len(segs[0]), len(segs[1]), len(segs[2])
	switch {
	case l1 == 5 && l2 == 4 && l3 == 2:
		// Already 11-digit.
	case l1 == 4 && l2 == 4 && l3 == 2:
		segs[0] = "0" + segs[0]
	case l1 == 5 && l2 == 3 && l3 == 2:
		segs[1] = "0" + segs[1]
	case l1 == 5 && l2 == 4 && l3 == 1:
		segs[2] = "0" + segs[2]
	default:
		return "", invalidIdentifier("packageNdc", "unsupported NDC segment layout %d-%d-%d", l1, l2, l3)
	}
	return strings.Join(segs, "-"), nil
}

// NDCProductCode extracts the 10-digit product code used inside GS1 keys
// from a package NDC in its original 10-digit form. It is the pad-free
// counterpart of NormalizeNDC: the stored NDC keeps the inserted zero, the
// product code never sees it. An 11-digit NDC is rejected: once the pad
// is in place its position cannot be recovered (a labeler code may itself
// start with 0), so callers must derive the code before normalizing.
func NDCProductCode(ndc string) (string, error) {
	segs, err := ndcSegments(ndc)
	if err != nil {
		return "", err
	}
	l1, l2, l3 := len(segs[0]), len(segs[1]), len(segs[2])
	supported := (l1 == 4 && l2 == 4 && l3 == 2) ||
		(l1 == 5 && l2 == 3 && l3 == 2) ||
		(l1 == 5 && l2 == 4 && l3 == 1)
	if !supported {
		return "", invalidIdentifier("packageNdc",
			"product code derivation needs a 10-digit NDC (4-4-2, 5-3-2 or 5-4-1), got %d-%d-%d", l1, l2, l3)
	}
	return strings.Join(segs, ""), nil
}

func ndcSegments(ndc string) ([]string, error) {
	ndc = strings.TrimSpace(ndc)
	if ndc == "" {
		return nil, invalidIdentifier("packageNdc", "package NDC is required")
	}
	segs := strings.Split(ndc, "-")
	if len(segs) != 3 {
		return nil, invalidIdentifier("packageNdc", "NDC must have three hyphenated segments, got %q", ndc)
	}
	total := 0
	for _, seg := range segs {
		if seg == "" || !allDigits(seg) {
			return nil, invalidIdentifier("packageNdc", "NDC segments must be numeric, got %q", ndc)
		}
		total += len(seg)
	}
	if total != 10 && total != 11 {
		return nil, invalidIdentifier("packageNdc", "NDC must contain 10 or 11 digits, got %d", total)
	}
	return segs, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
