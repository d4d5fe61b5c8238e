package adminusers

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

// UsersListPage renders the user table and the create-user form.
func UsersListPage(session models.Session, data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.TopNavHTML(nav.BuildTopNavData(session)))
		b.WriteString(`<main><h1>Users</h1>`)
		if data.Status != "" {
			fmt.Fprintf(&b, `<p class="status">%s</p>`, templ.EscapeString(data.Status))
		}
		if data.ErrorMessage != "" {
			fmt.Fprintf(&b, `<p class="error">%s</p>`, templ.EscapeString(data.ErrorMessage))
		}

		b.WriteString(`<table><thead><tr><th>ID</th><th>Username</th><th>Role</th></tr></thead><tbody>`)
		for _, u := range data.Users {
			fmt.Fprintf(&b, `<tr><td>%d</td><td>%s</td><td>%s</td></tr>`,
				u.ID, templ.EscapeString(u.Username), templ.EscapeString(u.Role))
		}
		b.WriteString(`</tbody></table>`)

		b.WriteString(`<h2>Create user</h2><form method="POST" action="/console/admin/users">` +
			`<label>Username<input type="text" name="username"></label>` +
			`<label>Password<input type="password" name="password"></label>` +
			`<label>Role<select name="role"><option value="operator">operator</option><option value="admin">admin</option></select></label>` +
			`<button type="submit">Create</button></form></main>`)

		_, err := io.WriteString(w, html.RenderLayoutString("Users", b.String()))
		return err
	})
}
