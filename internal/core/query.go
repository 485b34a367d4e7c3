// AngelaMos | 2026
// query.go

package core

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type PageParams struct {
	Page  int
	Limit int
}

// ParsePage reads page/limit from the query string, falling back to the
// defaults on missing, non-numeric, or non-positive values.
func ParsePage(q url.Values) PageParams {
	p := PageParams{
		Page:  parsePositive(q.Get("page"), DefaultPage),
		Limit: parsePositive(q.Get("limit"), DefaultLimit),
	}
	p.Normalize()
	return p
}

func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func parsePositive(val string, fallback int) int {
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (d DateRange) IsZero() bool {
	return d.From == nil && d.To == nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDateRange reads the inclusive from/to bounds on creation time.
// Date-only values are midnight UTC.
func ParseDateRange(q url.Values) (DateRange, error) {
	var r DateRange

	from, err := parseDate(q.Get("from"))
	if err != nil {
		return r, fmt.Errorf("from: %w", err)
	}
	to, err := parseDate(q.Get("to"))
	if err != nil {
		return r, fmt.Errorf("to: %w", err)
	}

	r.From, r.To = from, to
	return r, nil
}

func parseDate(val string) (*time.Time, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("invalid date %q: %w", val, ErrInvalidInput)
}

// ParseBool accepts only the literals "true" and "false".
func ParseBool(val string) *bool {
	switch val {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	}
	return nil
}

// Where accumulates AND-ed SQL conditions with positional pgx arguments.
type Where struct {
	conds []string
	args  []any
}

// Arg binds v and returns its placeholder.
func (w *Where) Arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *Where) And(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *Where) Eq(column string, v any) {
	w.And(column + " = " + w.Arg(v))
}

// Search adds a case-insensitive substring match of term against any of
// the columns. Blank terms are ignored.
func (w *Where) Search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}

	ph := w.Arg("%" + EscapeLike(term) + "%")
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+" ILIKE "+ph)
	}

	w.And("(" + strings.Join(parts, " OR ") + ")")
}

func (w *Where) Range(column string, r DateRange) {
	if r.From != nil {
		w.And(column + " >= " + w.Arg(*r.From))
	}
	if r.To != nil {
		w.And(column + " <= " + w.Arg(*r.To))
	}
}

func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

func (w *Where) Args() []any {
	out := make([]any, len(w.args))
	copy(out, w.args)
	return out
}

func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
