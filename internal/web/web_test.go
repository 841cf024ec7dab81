package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/view"
)

func TestMarkdownOmitsRawHTML(t *testing.T) {
	out := string(Markdown("**Closed** Friday <script>alert(1)</script>"))
	if !strings.Contains(out, "<strong>Closed</strong>") {
		t.Fatalf("out = %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw html leaked: %q", out)
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"":                         "N/A",
		"2024-03-01T09:30:00.000Z": "Mar 1, 2024",
		"2024-03-01":               "Mar 1, 2024",
		"someday":                  "someday",
	}
	for in, want := range cases {
		if got := FormatDate(in); got != want {
			t.Fatalf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEngineRendersLoginPage(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	page := view.NewPage("Login", "", domain.Staff{})
	page.Notes.Error("Login failed! bad password")
	page.Data = struct {
		Form    forms.LoginForm
		Errors  forms.Errors
		Expired bool
	}{Form: forms.LoginForm{Email: "a@b.gov"}, Errors: forms.LoginForm{}.Validate(), Expired: true}

	var buf bytes.Buffer
	if err := engine.Render(&buf, "login", page, LayoutAuth); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Staff Login", "Login failed! bad password", "session has expired", "Password is required"} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in %s", want, html)
		}
	}
}
