// Package forms binds, validates and converts the portal's add/edit forms.
package forms

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// ModeKind distinguishes creating a record from editing one.
type ModeKind int

const (
	ModeCreate ModeKind = iota
	ModeEdit
)

// Mode is either Create or Edit(id).
type Mode struct {
	Kind ModeKind
	ID   string
}

func Create() Mode          { return Mode{Kind: ModeCreate} }
func Edit(id string) Mode   { return Mode{Kind: ModeEdit, ID: id} }
func (m Mode) IsEdit() bool { return m.Kind == ModeEdit }

// Errors maps a field name to its message. Only failing fields are present.
type Errors map[string]string

func (e Errors) Valid() bool { return len(e) == 0 }

func (e Errors) Get(field string) string { return e[field] }

func (e Errors) add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

var (
	emailRe          = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
	departmentNameRe = regexp.MustCompile(`^[a-zA-Z0-9 ]{2,50}$`)
	departmentPhone  = regexp.MustCompile(`^\d{7,15}$`)
	staffPhoneRe     = regexp.MustCompile(`^\d{10}$`)
)

// ValidEmail reports whether s has the accepted email shape.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// StrongPassword requires 8+ characters with at least one letter and one digit.
func StrongPassword(s string) bool {
	if len([]rune(s)) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		}
	}
	return letter && digit
}

const dateLayout = "2006-01-02"

// DateInput renders a backend timestamp for an <input type="date">.
func DateInput(v string) string {
	if v == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Format(dateLayout)
	}
	if len(v) >= len(dateLayout) {
		return v[:len(dateLayout)]
	}
	return v
}

// DateToISO turns a date input back into the ISO timestamp the backend stores.
func DateToISO(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t.UTC().Format("2006-01-02T15:04:05.000Z")
	}
	return v
}
