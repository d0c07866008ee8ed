package query

import (
	"fmt"
	"reflect"
	"strings"
)

// SortField names a logical field in an ORDER BY clause. Descending
// controls direction (false = ASC, true = DESC).
type SortField struct {
	Field      string
	Descending bool
}

// ParseSortFields parses a comma-separated sort string into SortFields.
// Fields prefixed with "-" sort descending, e.g. "topic,-started_at".
// Returns nil for empty input.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, descending := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: field, Descending: descending})
	}
	return fields
}

// Builder accumulates conditions and ordering for a projection, then
// renders SELECT statements with positional parameters. Placeholders are
// numbered as conditions are added, so every Build variant shares the
// same argument list. Builders are single-use.
type Builder struct {
	projection  *ProjectionMap
	where       []string
	args        []any
	sort        []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder for the projection with optional default sorting.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// WhereEquals adds an equality condition. No-op for nil values.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	col := b.projection.Column(field)
	b.where = append(b.where, fmt.Sprintf("%s = %s", col, b.placeholder(value)))
	return b
}

// WhereContains adds a case-insensitive substring condition. No-op for
// nil or empty values.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	col := b.projection.Column(field)
	b.where = append(b.where, fmt.Sprintf("%s ILIKE %s", col, b.placeholder("%"+*value+"%")))
	return b
}

// WhereIn adds an IN condition. No-op for empty value lists.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}

	col := b.projection.Column(field)
	placeholders := make([]string, len(values))
	for i, value := range values {
		placeholders[i] = b.placeholder(value)
	}
	b.where = append(b.where, fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", ")))
	return b
}

// WhereSearch adds an OR group matching the search term against each
// field with ILIKE. No-op for nil or empty search terms.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + *search + "%"
	clauses := make([]string, len(fields))
	for i, field := range fields {
		col := b.projection.Column(field)
		clauses[i] = fmt.Sprintf("%s ILIKE %s", col, b.placeholder(pattern))
	}
	b.where = append(b.where, "("+strings.Join(clauses, " OR ")+")")
	return b
}

// OrderByFields sets the sort order, overriding the default sort.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// Build renders a SELECT with the accumulated conditions and ordering.
func (b *Builder) Build() (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.From(),
		b.whereClause(),
		b.orderClause(),
	)
	return sql, b.args
}

// BuildCount renders a COUNT(*) with the accumulated conditions.
func (b *Builder) BuildCount() (string, []any) {
	sql := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s%s",
		b.projection.From(),
		b.whereClause(),
	)
	return sql, b.args
}

// BuildPage renders a paginated SELECT with ordering, limit, and offset.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	offset := (page - 1) * pageSize
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.From(),
		b.whereClause(),
		b.orderClause(),
		pageSize,
		offset,
	)
	return sql, b.args
}

// BuildSingle renders a SELECT for one record by ID, ignoring any
// accumulated conditions.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.From(),
		b.projection.Column(idField),
	)
	return sql, []any{id}
}

func (b *Builder) placeholder(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *Builder) whereClause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

func (b *Builder) orderClause() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = fmt.Sprintf("%s %s", b.projection.Column(f.Field), dir)
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
