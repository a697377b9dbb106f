package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promptforge/internal/config"
	"promptforge/internal/deepseek"
	"promptforge/internal/node"
)

type stubNode struct {
	id      string
	err     error
	outputs node.Outputs
}

func (s *stubNode) Spec() node.Spec {
	return node.Spec{
		ID:          s.id,
		DisplayName: "Stub Node",
		Category:    "test",
		Inputs:      []node.InputField{{Name: "text", Type: node.FieldString, Optional: true}},
		Outputs: []node.OutputField{
			{Name: "prompt", Type: node.FieldString},
			{Name: "preview", Type: node.FieldString},
		},
	}
}

func (s *stubNode) Execute(ctx context.Context, in node.Inputs) (node.Outputs, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.outputs, nil
}

func newTestServer(t *testing.T, nodes ...node.Node) *Server {
	t.Helper()

	registry := node.NewRegistry()
	for _, n := range nodes {
		if err := registry.Register(n); err != nil {
			t.Fatalf("register node: %v", err)
		}
	}

	srv, err := New(config.Default(), registry)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.app.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body: got %q", rec.Body.String())
	}
}

func TestListNodes(t *testing.T) {
	srv := newTestServer(t, &stubNode{id: "stub"})

	rec := doRequest(srv, http.MethodGet, "/v1/nodes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Nodes []node.Spec `json:"nodes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Nodes) != 1 || resp.Nodes[0].ID != "stub" {
		t.Errorf("nodes: got %+v", resp.Nodes)
	}
	if resp.Nodes[0].DisplayName != "Stub Node" {
		t.Errorf("display name: got %q", resp.Nodes[0].DisplayName)
	}
}

func TestGetNodeUnknown(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/v1/nodes/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestExecuteNode(t *testing.T) {
	srv := newTestServer(t, &stubNode{
		id:      "stub",
		outputs: node.Outputs{"prompt": "P", "preview": "[model: sdxl]\n\nP"},
	})

	rec := doRequest(srv, http.MethodPost, "/v1/nodes/stub/execute", `{"inputs":{"text":"a cat"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var resp executeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Node != "stub" {
		t.Errorf("node: got %q, want stub", resp.Node)
	}
	if resp.InvocationID == "" {
		t.Error("invocation_id should not be empty")
	}
	if resp.Outputs["prompt"] != "P" {
		t.Errorf("outputs.prompt: got %v, want P", resp.Outputs["prompt"])
	}
}

func TestExecuteNodeBadJSON(t *testing.T) {
	srv := newTestServer(t, &stubNode{id: "stub"})

	rec := doRequest(srv, http.MethodPost, "/v1/nodes/stub/execute", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestExecuteNodeEmptyBody(t *testing.T) {
	srv := newTestServer(t, &stubNode{id: "stub"})

	rec := doRequest(srv, http.MethodPost, "/v1/nodes/stub/execute", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestExecuteNodeErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantInBody string
	}{
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: api_key is required", node.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantInBody: "api_key is required",
		},
		{
			name:       "remote error surfaces status and body",
			err:        &deepseek.RemoteError{StatusCode: 400, Body: "bad request"},
			wantStatus: http.StatusBadGateway,
			wantInBody: "bad request",
		},
		{
			name:       "transport timeout",
			err:        &deepseek.TransportError{Err: context.DeadlineExceeded},
			wantStatus: http.StatusGatewayTimeout,
			wantInBody: "connection error",
		},
		{
			name:       "transport failure",
			err:        &deepseek.TransportError{Err: fmt.Errorf("connection refused")},
			wantStatus: http.StatusBadGateway,
			wantInBody: "connection error",
		},
		{
			name:       "parse error",
			err:        &deepseek.ParseError{Body: "oops", Err: fmt.Errorf("empty response content")},
			wantStatus: http.StatusBadGateway,
			wantInBody: "empty response content",
		},
		{
			name:       "unclassified error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantInBody: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubNode{id: "stub", err: tt.err})

			rec := doRequest(srv, http.MethodPost, "/v1/nodes/stub/execute", `{"inputs":{}}`)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantInBody) {
				t.Errorf("body %q should contain %q", rec.Body.String(), tt.wantInBody)
			}
		})
	}
}

func TestNewRejectsNilRegistry(t *testing.T) {
	if _, err := New(config.Default(), nil); err == nil {
		t.Fatal("expected error for nil registry")
	}
}
