package nav

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"serialtrace/models"
)

// TopNavData is shared with page renderers.
type TopNavData struct {
	Username string
	Role     string
}

func BuildTopNavData(session models.Session) TopNavData {
	return TopNavData{Username: session.User.Username, Role: session.User.Role}
}

// TopNavHTML renders the navigation bar markup for page bodies.
func TopNavHTML(data TopNavData) string {
	var b strings.Builder
	b.WriteString(`<nav class="topnav"><a href="/console/configurations">Configurations</a>`)
	if data.Role == "admin" {
		b.WriteString(`<a href="/console/runs">Runs</a><a href="/console/admin/users">Users</a>`)
	}
	fmt.Fprintf(&b, `<span class="topnav-user">%s</span>`, templ.EscapeString(data.Username))
	b.WriteString(`<form method="POST" action="/logout"><button type="submit">Logout</button></form></nav>`)
	return b.String()
}
