package runs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	generatepage "serialtrace/frontend/generate"
	"serialtrace/frontend/shared/html"
	"serialtrace/frontend/shared/nav"
	"serialtrace/models"
)

// RunsPage renders the generation history table.
func RunsPage(session models.Session, rows []generatepage.RunView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.TopNavHTML(nav.BuildTopNavData(session)))
		b.WriteString(`<main><h1>Generation runs</h1>`)
		b.WriteString(`<table><thead><tr><th>ID</th><th>Configuration</th><th>Filename</th><th>SSCCs</th><th>Events</th><th>By</th><th>At</th></tr></thead><tbody>`)
		for _, row := range rows {
			fmt.Fprintf(&b, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td><td>%s</td></tr>`,
				row.ID, templ.EscapeString(row.ConfigurationName), templ.EscapeString(row.Filename),
				row.SSCCCount, row.EventCount, templ.EscapeString(row.CreatedBy), templ.EscapeString(row.CreatedAt))
		}
		b.WriteString(`</tbody></table></main>`)

		_, err := io.WriteString(w, html.RenderLayoutString("Generation runs", b.String()))
		return err
	})
}
