package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// RenderLayoutString wraps body markup in the shared page chrome. Body
// markup is trusted; callers must escape user data before building it.
func RenderLayoutString(title, body string) string {
	return fmt.Sprintf(
		"<!doctype html><html><head><meta charset=\"utf-8\"><title>%s</title><link rel=\"stylesheet\" href=\"/assets/app.css\"></head><body>%s%s</body></html>",
		templ.EscapeString(title), body, CSRFFormScript())
}

// Layout is the component form of RenderLayoutString.
func Layout(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, RenderLayoutString(title, body))
		return err
	})
}
