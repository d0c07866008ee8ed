package query_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/outpost-labs/scout/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "runs", "r").
		Project("id", "ID").
		Project("topic", "Topic").
		Project("status", "Status").
		Project("started_at", "StartedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	if got, want := p.From(), "public.runs r"; got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	if got, want := p.Columns(), "r.id, r.topic, r.status, r.started_at"; got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumn(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"mapped field", "Topic", "r.topic"},
		{"mapped compound", "StartedAt", "r.started_at"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	p := testProjection()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.field); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "Topic", []query.SortField{{Field: "Topic"}}},
		{
			name:  "mixed directions",
			input: "Topic,-StartedAt",
			want: []query.SortField{
				{Field: "Topic"},
				{Field: "StartedAt", Descending: true},
			},
		},
		{
			name:  "whitespace and empty parts",
			input: " Topic , ,-Status",
			want: []query.SortField{
				{Field: "Topic"},
				{Field: "Status", Descending: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildWithConditions(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("Status", ptr("completed")).
		WhereContains("Topic", ptr("edge")).
		Build()

	want := "SELECT r.id, r.topic, r.status, r.started_at FROM public.runs r" +
		" WHERE r.status = $1 AND r.topic ILIKE $2"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}

	wantArgs := []any{ptr("completed"), "%edge%"}
	if len(args) != len(wantArgs) {
		t.Fatalf("args = %v, want %d values", args, len(wantArgs))
	}
	if args[1] != "%edge%" {
		t.Errorf("args[1] = %v, want %%edge%%", args[1])
	}
}

func TestBuildSkipsNilConditions(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("Status", (*string)(nil)).
		WhereContains("Topic", nil).
		Build()

	want := "SELECT r.id, r.topic, r.status, r.started_at FROM public.runs r"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuildCountSharesArgs(t *testing.T) {
	b := query.NewBuilder(testProjection()).WhereEquals("Status", ptr("failed"))

	countSQL, countArgs := b.BuildCount()
	pageSQL, pageArgs := b.BuildPage(2, 10)

	if want := "SELECT COUNT(*) FROM public.runs r WHERE r.status = $1"; countSQL != want {
		t.Errorf("count sql = %q, want %q", countSQL, want)
	}
	wantPage := "SELECT r.id, r.topic, r.status, r.started_at FROM public.runs r" +
		" WHERE r.status = $1 LIMIT 10 OFFSET 10"
	if pageSQL != wantPage {
		t.Errorf("page sql = %q, want %q", pageSQL, wantPage)
	}
	if len(countArgs) != 1 || len(pageArgs) != 1 {
		t.Errorf("arg counts = %d, %d, want 1, 1", len(countArgs), len(pageArgs))
	}
}

func TestBuildPageOrdering(t *testing.T) {
	defaultSort := query.SortField{Field: "StartedAt", Descending: true}

	sql, _ := query.NewBuilder(testProjection(), defaultSort).BuildPage(1, 20)
	if want := " ORDER BY r.started_at DESC LIMIT 20 OFFSET 0"; !strings.Contains(sql, want) {
		t.Errorf("sql = %q, missing %q", sql, want)
	}

	sql, _ = query.NewBuilder(testProjection(), defaultSort).
		OrderByFields([]query.SortField{{Field: "Topic"}}).
		BuildPage(1, 20)
	if want := " ORDER BY r.topic ASC"; !strings.Contains(sql, want) {
		t.Errorf("sql = %q, missing override %q", sql, want)
	}
}

func TestBuildSearchGroupsFields(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereSearch(ptr("edge"), "Topic", "Status").
		Build()

	want := " WHERE (r.topic ILIKE $1 OR r.status ILIKE $2)"
	if !strings.Contains(sql, want) {
		t.Errorf("sql = %q, missing %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2 values", args)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")

	want := "SELECT r.id, r.topic, r.status, r.started_at FROM public.runs r WHERE r.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestBuildIn(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereIn("Status", []any{"completed", "failed"}).
		Build()

	if want := " WHERE r.status IN ($1, $2)"; !strings.Contains(sql, want) {
		t.Errorf("sql = %q, missing %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2 values", args)
	}
}

