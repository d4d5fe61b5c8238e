package serials

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

// SerialImportPage renders the pool state and CSV upload form.
func SerialImportPage(session models.Session, data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		base := fmt.Sprintf("/console/configurations/%d", data.ConfigurationID)

		var b strings.Builder
		b.WriteString(nav.TopNavHTML(nav.BuildTopNavData(session)))
		fmt.Fprintf(&b, `<main><h1>Serials: %s</h1>`, templ.EscapeString(data.ConfigurationName))
		if data.Message != "" {
			fmt.Fprintf(&b, `<p class="status">%s</p>`, templ.EscapeString(data.Message))
		}

		b.WriteString(`<table><thead><tr><th>Level</th><th>Serials</th></tr></thead><tbody>`)
		for _, level := range []string{"item", "inner_case", "case", "sscc"} {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%d</td></tr>`, level, data.Counts[level])
		}
		b.WriteString(`</tbody></table>`)

		fmt.Fprintf(&b, `<form method="POST" action="%s/serials" enctype="multipart/form-data">`+
			`<label>CSV file<input type="file" name="file" accept=".csv"></label>`+
			`<button type="submit">Import</button></form>`, base)
		fmt.Fprintf(&b, `<form method="POST" action="%s/serials/clear"><button type="submit">Clear all pools</button></form>`, base)
		fmt.Fprintf(&b, `<p><a href="%s">Back to configuration</a></p></main>`, base)

		_, err := io.WriteString(w, html.RenderLayoutString("Serials", b.String()))
		return err
	})
}
