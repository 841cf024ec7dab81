// Package web holds the portal's HTML templates and their helper funcs.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/govhub/helpdesk-portal/internal/domain"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	LayoutMain = "layouts/main"
	LayoutAuth = "layouts/auth"
)

// NewEngine parses the embedded templates. Parse errors surface here
// rather than on the first request.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(Funcs())
	if err := engine.Load(); err != nil {
		return nil, err
	}
	return engine, nil
}

// Static serves the stylesheet and other assets under /static.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"date":     FormatDate,
		"hasRole":  HasRole,
		"add":      func(a, b int) int { return a + b },
	}
}

// Markdown renders user content. Raw HTML in the source is omitted.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"}

// FormatDate shows backend timestamps as dates. Unparseable input is shown
// as-is and empty input as N/A.
func FormatDate(v string) string {
	if v == "" {
		return "N/A"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return v
}

// HasRole reports whether role is one of names.
func HasRole(role domain.Role, names ...string) bool {
	for _, n := range names {
		if string(role) == n {
			return true
		}
	}
	return false
}
