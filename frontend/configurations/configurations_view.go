package configurations

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"serialtrace/frontend/shared/html"
	"serialtrace/frontend/shared/nav"
	"serialtrace/models"
)

// ConfigurationsListPage renders the configuration table and create form.
func ConfigurationsListPage(session models.Session, data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.TopNavHTML(nav.BuildTopNavData(session)))
		b.WriteString(`<main><h1>Configurations</h1>`)
		writeBanners(&b, data.Status, data.ErrorMessage)

		b.WriteString(`<table><thead><tr><th>Name</th><th>SSCCs</th><th>Cases/SSCC</th><th>Items/Case</th><th>Receiver</th></tr></thead><tbody>`)
		for _, c := range data.Configurations {
			fmt.Fprintf(&b, `<tr><td><a href="/console/configurations/%d">%s</a></td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>`,
				c.ID, templ.EscapeString(c.Name), c.NumberOfSSCC, c.CasesPerSSCC, c.ItemsPerCase, templ.EscapeString(c.ReceiverName))
		}
		b.WriteString(`</tbody></table>`)

		b.WriteString(`<h2>New configuration</h2>`)
		writeConfigurationForm(&b, "/console/configurations", models.Configuration{ShipperSameAsSender: true, NumberOfSSCC: 1})
		b.WriteString(`</main>`)

		_, err := io.WriteString(w, html.RenderLayoutString("Configurations", b.String()))
		return err
	})
}

// ConfigurationDetailPage renders one configuration's edit form, serial
// pool state and generation links.
func ConfigurationDetailPage(session models.Session, data DetailData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cfg := data.Configuration
		base := "/console/configurations/" + strconv.FormatInt(cfg.ID, 10)

		var b strings.Builder
		b.WriteString(nav.TopNavHTML(nav.BuildTopNavData(session)))
		fmt.Fprintf(&b, `<main><h1>%s</h1>`, templ.EscapeString(cfg.Name))
		writeBanners(&b, data.Status, data.ErrorMessage)

		b.WriteString(`<section class="serial-counts"><h2>Serial pools</h2><ul>`)
		for _, level := range []string{"item", "inner_case", "case", "sscc"} {
			fmt.Fprintf(&b, `<li>%s: %d</li>`, level, data.SerialCounts[level])
		}
		b.WriteString(`</ul>`)
		fmt.Fprintf(&b, `<p><a href="%s/serials">Import serials</a> | <a href="%s/generate">Generate document</a> | <a href="%s/labels.pdf">SSCC labels</a></p></section>`,
			base, base, base)

		b.WriteString(`<h2>Edit</h2>`)
		writeConfigurationForm(&b, base, cfg)
		b.WriteString(`</main>`)

		_, err := io.WriteString(w, html.RenderLayoutString(cfg.Name, b.String()))
		return err
	})
}

func writeBanners(b *strings.Builder, status, errorMessage string) {
	if status != "" {
		fmt.Fprintf(b, `<p class="status">%s</p>`, templ.EscapeString(status))
	}
	if errorMessage != "" {
		fmt.Fprintf(b, `<p class="error">%s</p>`, templ.EscapeString(errorMessage))
	}
}

func writeConfigurationForm(b *strings.Builder, action string, cfg models.Configuration) {
	text := func(label, name, value string) {
		fmt.Fprintf(b, `<label>%s<input type="text" name="%s" value="%s"></label>`,
			label, name, templ.EscapeString(value))
	}
	num := func(label, name string, value int) {
		fmt.Fprintf(b, `<label>%s<input type="number" name="%s" value="%d" min="0"></label>`, label, name, value)
	}
	check := func(label, name string, checked bool) {
		checkedAttr := ""
		if checked {
			checkedAttr = " checked"
		}
		fmt.Fprintf(b, `<label>%s<input type="checkbox" name="%s"%s></label>`, label, name, checkedAttr)
	}

	fmt.Fprintf(b, `<form method="POST" action="%s">`, action)

	b.WriteString(`<fieldset><legend>Identity</legend>`)
	text("Name", "name", cfg.Name)
	text("Company prefix", "company_prefix", cfg.CompanyPrefix)
	b.WriteString(`</fieldset>`)

	b.WriteString(`<fieldset><legend>Hierarchy</legend>`)
	num("Number of SSCCs", "number_of_sscc", cfg.NumberOfSSCC)
	num("Cases per SSCC (0 = items direct to SSCC)", "cases_per_sscc", cfg.CasesPerSSCC)
	num("Items per case", "items_per_case", cfg.ItemsPerCase)
	check("Inner cases", "inner_cases_enabled", cfg.InnerCasesEnabled)
	num("Inner cases per case", "inner_cases_per_case", cfg.InnerCasesPerCase)
	num("Items per inner case", "items_per_inner_case", cfg.ItemsPerInnerCase)
	b.WriteString(`</fieldset>`)

	b.WriteString(`<fieldset><legend>GS1 identifiers</legend>`)
	text("Item indicator digit", "item_indicator_digit", cfg.ItemIndicatorDigit)
	text("Item product code", "item_product_code", cfg.ItemProductCode)
	text("Case indicator digit", "case_indicator_digit", cfg.CaseIndicatorDigit)
	text("Case product code", "case_product_code", cfg.CaseProductCode)
	text("Inner case indicator digit", "inner_case_indicator_digit", cfg.InnerCaseIndicatorDigit)
	text("Inner case product code", "inner_case_product_code", cfg.InnerCaseProductCode)
	text("SSCC extension digit", "sscc_indicator_digit", cfg.SSCCIndicatorDigit)
	b.WriteString(`</fieldset>`)

	b.WriteString(`<fieldset><legend>Product</legend>`)
	text("Package NDC", "package_ndc", cfg.PackageNDC)
	text("Regulated product name", "regulated_product_name", cfg.RegulatedProductName)
	text("Manufacturer", "manufacturer_name", cfg.ManufacturerName)
	text("Dosage form", "dosage_form_type", cfg.DosageFormType)
	text("Strength", "strength_description", cfg.StrengthDescription)
	text("Net content", "net_content_description", cfg.NetContentDescription)
	text("Lot number", "lot_number", cfg.LotNumber)
	text("Expiration date (YYYY-MM-DD)", "expiration_date", cfg.ExpirationDate)
	b.WriteString(`</fieldset>`)

	writePartyFieldset(b, "Sender", "sender", cfg.SenderName, cfg.SenderCompanyPrefix, cfg.SenderGLN, cfg.SenderSGLN, cfg.SenderStreet, cfg.SenderCity, cfg.SenderState, cfg.SenderPostalCode, cfg.SenderCountryCode)
	writePartyFieldset(b, "Receiver", "receiver", cfg.ReceiverName, cfg.ReceiverCompanyPrefix, cfg.ReceiverGLN, cfg.ReceiverSGLN, cfg.ReceiverStreet, cfg.ReceiverCity, cfg.ReceiverState, cfg.ReceiverPostalCode, cfg.ReceiverCountryCode)

	b.WriteString(`<fieldset><legend>Shipper</legend>`)
	check("Same as sender", "shipper_same_as_sender", cfg.ShipperSameAsSender)
	b.WriteString(`</fieldset>`)
	writePartyFieldset(b, "Shipper details", "shipper", cfg.ShipperName, cfg.ShipperCompanyPrefix, cfg.ShipperGLN, cfg.ShipperSGLN, cfg.ShipperStreet, cfg.ShipperCity, cfg.ShipperState, cfg.ShipperPostalCode, cfg.ShipperCountryCode)

	b.WriteString(`<button type="submit">Save</button></form>`)
}

func writePartyFieldset(b *strings.Builder, legend, prefix string, name, companyPrefix, gln, sgln, street, city, state, postalCode, countryCode string) {
	fmt.Fprintf(b, `<fieldset><legend>%s</legend>`, legend)
	fields := []struct {
		label string
		name  string
		value string
	}{
		{"Name", prefix + "_name", name},
		{"Company prefix", prefix + "_company_prefix", companyPrefix},
		{"GLN", prefix + "_gln", gln},
		{"SGLN", prefix + "_sgln", sgln},
		{"Street", prefix + "_street", street},
		{"City", prefix + "_city", city},
		{"State", prefix + "_state", state},
		{"Postal code", prefix + "_postal_code", postalCode},
		{"Country code", prefix + "_country_code", countryCode},
	}
	for _, f := range fields {
		fmt.Fprintf(b, `<label>%s<input type="text" name="%s" value="%s"></label>`,
			f.label, f.name, templ.EscapeString(f.value))
	}
	b.WriteString(`</fieldset>`)
}
