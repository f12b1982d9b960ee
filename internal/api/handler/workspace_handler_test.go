package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/roseyco/agency-portal/internal/core/domain"
	"github.com/roseyco/agency-portal/internal/core/ports"
)

type stubWorkspace struct {
	gotFilter ports.ListFilter
}

func (s *stubWorkspace) Clients(f ports.ListFilter) []domain.Client {
	s.gotFilter = f
	return []domain.Client{{Name: "Emily Davis"}}
}

func (s *stubWorkspace) Projects(f ports.ListFilter) []domain.Project {
	s.gotFilter = f
	return []domain.Project{}
}

func (s *stubWorkspace) Metrics() []domain.Metric {
	return []domain.Metric{{Key: "revenue"}, {Key: "clients"}}
}

func TestWorkspaceHandler_AdminClients_PassesFilter(t *testing.T) {
	stub := &stubWorkspace{}
	c, rec := newContext(http.MethodGet, "/api/workspace/admin/clients?search=emily&status=Active", "", nil)

	if err := NewWorkspaceHandler(stub).AdminClients(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.gotFilter.Search != "emily" || stub.gotFilter.Status != "Active" {
		t.Fatalf("unexpected filter: %+v", stub.gotFilter)
	}

	var resp struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWorkspaceHandler_ClientProjects_EmptyListIsArray(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/api/workspace/client/projects", "", nil)

	if err := NewWorkspaceHandler(&stubWorkspace{}).ClientProjects(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["data"].([]any); !ok {
		t.Fatalf("expected data array, got %v", resp["data"])
	}
}

func TestWorkspaceHandler_AdminMetrics(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/api/workspace/admin/metrics", "", nil)

	if err := NewWorkspaceHandler(&stubWorkspace{}).AdminMetrics(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 metrics, got %d", resp.Total)
	}
}
