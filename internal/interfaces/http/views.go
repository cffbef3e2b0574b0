package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Raw HTML in markdown input is escaped since goldmark's unsafe mode is off.
var mdRenderer = goldmark.New()

type Views struct {
	tmpl *template.Template
}

func NewViews() (*Views, error) {
	tmpl, err := template.New("console").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Views{tmpl: tmpl}, nil
}

func (v *Views) Execute(w io.Writer, name string, data any) error {
	return v.tmpl.ExecuteTemplate(w, name, data)
}

func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(bytes.TrimSpace(buf.Bytes()))
}

type toastView struct {
	Message   string
	Visible   bool
	OOB       bool
	PollAfter string
}

func pollAfter(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
