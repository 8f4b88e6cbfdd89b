package view

import (
	"embed"
	"fmt"
	"html"
	"io"
	"strings"
	"text/template"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.tmpl
var textTemplates embed.FS

// TextRenderer writes views as plain text for terminals. Upstream strings
// are stripped of any markup before printing.
type TextRenderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

func NewTextRenderer() (*TextRenderer, error) {
	r := &TextRenderer{policy: bluemonday.StrictPolicy()}

	tmpl, err := template.New("text").Funcs(template.FuncMap{
		"clean": r.clean,
		"inc":   func(i int) int { return i + 1 },
	}).ParseFS(textTemplates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

func (r *TextRenderer) Display(w io.Writer, m DisplayModel) error {
	return r.tmpl.ExecuteTemplate(w, "display", m)
}

func (r *TextRenderer) Search(w io.Writer, m SearchModel) error {
	return r.tmpl.ExecuteTemplate(w, "search", m)
}

func (r *TextRenderer) Overlay(w io.Writer, m OverlayModel) error {
	return r.tmpl.ExecuteTemplate(w, "overlay", m)
}

func (r *TextRenderer) clean(v any) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case *string:
		if t == nil {
			return ""
		}
		s = *t
	default:
		s = fmt.Sprint(v)
	}
	// StrictPolicy escapes what it keeps; undo that for terminal output.
	return strings.TrimSpace(html.UnescapeString(r.policy.Sanitize(s)))
}
