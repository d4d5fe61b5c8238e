package generate

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"serialtrace/frontend/shared/html"
	"serialtrace/frontend/shared/nav"
	"serialtrace/models"
)

// GeneratePage renders the pool readiness table and the generate form.
func GeneratePage(session models.Session, data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		base := fmt.Sprintf("/console/configurations/%d", data.ConfigurationID)

		var b strings.Builder
		b.WriteString(nav.TopNavHTML(nav.BuildTopNavData(session)))
		fmt.Fprintf(&b, `<main><h1>Generate: %s</h1>`, templ.EscapeString(data.ConfigurationName))
		if data.ErrorMessage != "" {
			fmt.Fprintf(&b, `<p class="error">%s</p>`, templ.EscapeString(data.ErrorMessage))
		}

		b.WriteString(`<table><thead><tr><th>Level</th><th>Required</th><th>Available</th></tr></thead><tbody>`)
		for _, level := range []string{"item", "inner_case", "case", "sscc"} {
			required, needed := data.Required[level]
			if !needed {
				continue
			}
			cls := "ok"
			if data.Available[level] < required {
				cls = "short"
			}
			fmt.Fprintf(&b, `<tr class="%s"><td>%s</td><td>%d</td><td>%d</td></tr>`,
				cls, level, required, data.Available[level])
		}
		b.WriteString(`</tbody></table>`)

		fmt.Fprintf(&b, `<form method="POST" action="%s/generate">`+
			`<label>Read point SGLN<input type="text" name="read_point"></label>`+
			`<label>Business location SGLN<input type="text" name="biz_location"></label>`+
			`<label>Despatch advice number<input type="text" name="despatch_advice"></label>`+
			`<button type="submit">Generate EPCIS document</button></form>`, base)
		fmt.Fprintf(&b, `<p><a href="%s">Back to configuration</a> | <a href="%s/serials">Serial pools</a></p></main>`, base, base)

		_, err := io.WriteString(w, html.RenderLayoutString("Generate", b.String()))
		return err
	})
}
