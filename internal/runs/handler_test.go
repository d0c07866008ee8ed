package runs_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/outpost-labs/scout/internal/engine"
	"github.com/outpost-labs/scout/internal/runs"
	"github.com/outpost-labs/scout/pkg/pagination"
	"github.com/outpost-labs/scout/pkg/routes"
)

type fakeSystem struct {
	listPage    pagination.PageRequest
	listFilters runs.Filters
	listResult  *pagination.PageResult[runs.Run]
	listErr     error

	findID     uuid.UUID
	findResult *runs.Run
	findErr    error
}

func (f *fakeSystem) Handler() *runs.Handler {
	return runs.NewHandler(f, testLogger(), testPagination())
}

func (f *fakeSystem) List(
	_ context.Context,
	page pagination.PageRequest,
	filters runs.Filters,
) (*pagination.PageResult[runs.Run], error) {
	f.listPage = page
	f.listFilters = filters
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeSystem) Find(_ context.Context, id uuid.UUID) (*runs.Run, error) {
	f.findID = id
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findResult, nil
}

func (f *fakeSystem) RecordCompleted(
	context.Context, engine.RunInput, *engine.Output, time.Duration,
) (*runs.Run, error) {
	return nil, nil
}

func (f *fakeSystem) RecordFailed(
	context.Context, engine.RunInput, error, time.Duration,
) (*runs.Run, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPagination() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func serve(sys runs.System, method, target string, body io.Reader) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	mux.ServeHTTP(rec, req)
	return rec
}

func archivedRun(topic string) runs.Run {
	return runs.Run{
		ID:       uuid.New(),
		Topic:    topic,
		Approach: "topic_only",
		Status:   runs.StatusCompleted,
	}
}

func TestListReturnsPage(t *testing.T) {
	result := pagination.NewPageResult([]runs.Run{archivedRun("edge ai")}, 1, 1, 20)
	sys := &fakeSystem{listResult: &result}

	rec := serve(sys, "GET", "/runs?status=completed&page=2&page_size=10", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var page pagination.PageResult[runs.Run]
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 {
		t.Errorf("page: got total=%d len=%d", page.Total, len(page.Data))
	}

	if sys.listFilters.Status == nil || *sys.listFilters.Status != "completed" {
		t.Errorf("status filter: got %v", sys.listFilters.Status)
	}
	if sys.listPage.Page != 2 || sys.listPage.PageSize != 10 {
		t.Errorf("page request: got %+v", sys.listPage)
	}
}

func TestListError(t *testing.T) {
	sys := &fakeSystem{listErr: io.ErrUnexpectedEOF}

	rec := serve(sys, "GET", "/runs", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}

func TestFindReturnsRun(t *testing.T) {
	archived := archivedRun("quantum")
	sys := &fakeSystem{findResult: &archived}

	rec := serve(sys, "GET", "/runs/"+archived.ID.String(), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if sys.findID != archived.ID {
		t.Errorf("find id: got %s, want %s", sys.findID, archived.ID)
	}

	var got runs.Run
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Topic != "quantum" {
		t.Errorf("topic: got %s", got.Topic)
	}
}

func TestFindInvalidID(t *testing.T) {
	sys := &fakeSystem{}

	rec := serve(sys, "GET", "/runs/not-a-uuid", nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestFindNotFound(t *testing.T) {
	sys := &fakeSystem{findErr: runs.ErrNotFound}

	rec := serve(sys, "GET", "/runs/"+uuid.NewString(), nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestSearch(t *testing.T) {
	result := pagination.NewPageResult([]runs.Run{}, 0, 1, 20)
	sys := &fakeSystem{listResult: &result}

	body := strings.NewReader(`{"page": 1, "page_size": 500, "approach": "topic_company_leads"}`)
	rec := serve(sys, "POST", "/runs/search", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if sys.listFilters.Approach == nil || *sys.listFilters.Approach != "topic_company_leads" {
		t.Errorf("approach filter: got %v", sys.listFilters.Approach)
	}
	if sys.listPage.PageSize != 100 {
		t.Errorf("page size should clamp to max: got %d", sys.listPage.PageSize)
	}
}

func TestSearchInvalidBody(t *testing.T) {
	sys := &fakeSystem{}

	rec := serve(sys, "POST", "/runs/search", strings.NewReader("{not json"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}
