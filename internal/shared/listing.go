package shared

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// FieldKind tells how a query-string value is converted for SQL.
type FieldKind int

const (
	KindText FieldKind = iota
	KindInt
	KindBool
)

// Field maps an API field name to the SQL expression backing it.
type Field struct {
	Name   string
	Column string
	Kind   FieldKind
}

// ListSpec declares the search, ordering and filter fields of a resource.
type ListSpec struct {
	Search          []Field
	Ordering        []Field
	Filters         []Field
	DefaultOrdering []string
}

// SearchNames returns the API names of the search fields.
func (s ListSpec) SearchNames() []string { return names(s.Search) }

// OrderingNames returns the API names of the ordering fields.
func (s ListSpec) OrderingNames() []string { return names(s.Ordering) }

// FilterNames returns the API names of the filter fields.
func (s ListSpec) FilterNames() []string { return names(s.Filters) }

func names(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return out
}

func lookup(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// OrderTerm is one parsed `ordering` entry.
type OrderTerm struct {
	Field Field
	Desc  bool
}

// FilterValue is one parsed equality filter.
type FilterValue struct {
	Field Field
	Value any
}

// ListParams is the parsed list query of one request.
type ListParams struct {
	Page     int
	Size     int
	Search   []string
	Ordering []OrderTerm
	Filters  []FilterValue
}

// Offset returns the row offset of the requested page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// CheckPage reports ErrInvalidPage when the page lies past the last one.
func (p ListParams) CheckPage(total int) error {
	if p.Page > 1 && p.Offset() >= total {
		return ErrInvalidPage
	}
	return nil
}

// FilterError reports a filter value that cannot be converted.
type FilterError struct {
	Field string
	Value string
}

func (e *FilterError) Error() string {
	return "invalid filter value " + strconv.Quote(e.Value) + " for " + e.Field
}

// ParseListParams reads page, size, search, ordering and filters from q.
// Unknown ordering fields are ignored; the size override is capped at maxSize.
func ParseListParams(q url.Values, spec ListSpec, defaultSize, maxSize int) (ListParams, error) {
	params := ListParams{Page: 1, Size: defaultSize}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return ListParams{}, ErrInvalidPage
		}
		params.Page = page
	}
	if raw := q.Get("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			params.Size = size
		}
	}
	if maxSize > 0 && params.Size > maxSize {
		params.Size = maxSize
	}
	if params.Page > math.MaxInt32/params.Size {
		return ListParams{}, ErrInvalidPage
	}

	if len(spec.Search) > 0 {
		params.Search = splitTerms(q.Get("search"))
	}

	if raw := q.Get("ordering"); raw != "" {
		for _, term := range strings.Split(raw, ",") {
			term = strings.TrimSpace(term)
			desc := strings.HasPrefix(term, "-")
			field, ok := lookup(spec.Ordering, strings.TrimPrefix(term, "-"))
			if !ok {
				continue
			}
			params.Ordering = append(params.Ordering, OrderTerm{Field: field, Desc: desc})
		}
	}

	for _, field := range spec.Filters {
		raw, ok := q[field.Name]
		if !ok || len(raw) == 0 || raw[0] == "" {
			continue
		}
		value, err := convert(field, raw[0])
		if err != nil {
			return ListParams{}, err
		}
		params.Filters = append(params.Filters, FilterValue{Field: field, Value: value})
	}
	return params, nil
}

func convert(field Field, raw string) (any, error) {
	switch field.Kind {
	case KindInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &FilterError{Field: field.Name, Value: raw}
		}
		return v, nil
	case KindBool:
		switch strings.ToLower(raw) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, &FilterError{Field: field.Name, Value: raw}
	default:
		return raw, nil
	}
}

// splitTerms splits a search string on whitespace and commas.
func splitTerms(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// Where renders the search and filter conditions as a SQL fragment starting
// with " WHERE " (or empty) and the positional arguments it references.
func (p ListParams) Where(spec ListSpec) (string, []any) {
	var conds []string
	var args []any
	for _, term := range p.Search {
		args = append(args, term)
		placeholder := "$" + strconv.Itoa(len(args))
		ors := make([]string, 0, len(spec.Search))
		for _, f := range spec.Search {
			col := f.Column
			if f.Kind != KindText {
				col += "::text"
			}
			ors = append(ors, "strpos(lower("+col+"), lower("+placeholder+")) > 0")
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	for _, fv := range p.Filters {
		args = append(args, fv.Value)
		conds = append(conds, fv.Field.Column+" = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// OrderBy renders the ORDER BY clause, falling back to the default ordering.
func (p ListParams) OrderBy(spec ListSpec) string {
	terms := make([]string, 0, len(p.Ordering))
	for _, o := range p.Ordering {
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		terms = append(terms, o.Field.Column+dir)
	}
	if len(terms) == 0 {
		terms = spec.DefaultOrdering
	}
	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}
