// Package export renders list and detail screens as PDF and XLSX downloads.
package export

import (
	"strconv"
	"strings"
)

// Table is a list screen flattened to strings, one row per record.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Field is one "label: value" line of a detail report.
type Field struct {
	Label string
	Value string
}

// Report is a detail screen rendered as a single PDF page.
type Report struct {
	Title  string
	Fields []Field
}

// ScopeKind selects which rows of a list are exported.
type ScopeKind string

const (
	ScopeAll      ScopeKind = "all"
	ScopePage     ScopeKind = "page"
	ScopeSelected ScopeKind = "selected"
)

const (
	defaultPageSize = 10
	maxPageSize     = 1000
)

// Scope narrows an export to all rows, one page, or a selection of ids.
type Scope struct {
	Kind ScopeKind
	Page int
	Size int
	IDs  []string
}

// ParseScope reads the export query. Unknown kinds export everything.
func ParseScope(kind, page, size string, ids []string) Scope {
	s := Scope{Kind: ScopeAll}
	switch ScopeKind(kind) {
	case ScopePage:
		s.Kind = ScopePage
		s.Page, _ = strconv.Atoi(page)
		s.Size, _ = strconv.Atoi(size)
		if s.Page < 1 {
			s.Page = 1
		}
		if s.Size < 1 {
			s.Size = defaultPageSize
		}
		if s.Size > maxPageSize {
			s.Size = maxPageSize
		}
	case ScopeSelected:
		s.Kind = ScopeSelected
		for _, raw := range ids {
			for _, id := range strings.Split(raw, ",") {
				if id = strings.TrimSpace(id); id != "" {
					s.IDs = append(s.IDs, id)
				}
			}
		}
	}
	return s
}

// Select applies the scope to rows, keeping their order.
func Select[T any](rows []T, scope Scope, idOf func(T) string) []T {
	switch scope.Kind {
	case ScopePage:
		if scope.Page < 1 || scope.Size < 1 {
			return nil
		}
		pages := len(rows) / scope.Size
		if len(rows)%scope.Size != 0 {
			pages++
		}
		if scope.Page > pages {
			return nil
		}
		start := (scope.Page - 1) * scope.Size
		end := start + scope.Size
		if end > len(rows) {
			end = len(rows)
		}
		return rows[start:end]
	case ScopeSelected:
		want := make(map[string]struct{}, len(scope.IDs))
		for _, id := range scope.IDs {
			want[id] = struct{}{}
		}
		out := make([]T, 0, len(scope.IDs))
		for _, r := range rows {
			if _, ok := want[idOf(r)]; ok {
				out = append(out, r)
			}
		}
		return out
	default:
		return rows
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
