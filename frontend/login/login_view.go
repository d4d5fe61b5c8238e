package login

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"serialtrace/frontend/shared/html"
)

// GetLoginScreen renders the login form with an optional error banner.
func GetLoginScreen(errorMessage string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<main class="login"><h1>Serial Trace</h1>`)
		if errorMessage != "" {
			fmt.Fprintf(&b, `<p class="error">%s</p>`, templ.EscapeString(errorMessage))
		}
		b.WriteString(`<form method="POST" action="/login">` +
			`<label>Username<input type="text" name="username" autofocus></label>` +
			`<label>Password<input type="password" name="password"></label>` +
			`<button type="submit">Sign in</button>` +
			`</form></main>`)
		_, err := io.WriteString(w, html.RenderLayoutString("Sign in", b.String()))
		return err
	})
}
