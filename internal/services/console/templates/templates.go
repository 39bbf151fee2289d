// Package templates holds the console view models and renders them through
// embedded html/template files. Pages render in two halves: a fragment for
// HTMX swaps and a full layout wrapping the same fragment for direct loads.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed *.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "*.html"))

// RenderFragment executes one named template with the given data.
func RenderFragment(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Page wraps a rendered fragment in the full console layout.
type Page struct {
	Ctx   PageContext
	Title string
	Body  template.HTML
}

// RenderPage executes the layout around an already-rendered fragment body.
func RenderPage(w io.Writer, page Page) error {
	if err := templates.ExecuteTemplate(w, "layout.html", page); err != nil {
		return fmt.Errorf("render layout: %w", err)
	}
	return nil
}
