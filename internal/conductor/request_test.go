package conductor

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestRequestURL(t *testing.T) {
	cfg := DefaultConfig()
	r := Request{Method: "GET", Path: "/api/workflow/running/my flow?version=1"}

	want := "http://localhost:8080/api/workflow/running/my%20flow?version=1"
	if got := r.URL(cfg); got != want {
		t.Errorf("Expected URL %s, got %s", want, got)
	}
}

func TestBuildRequestGET(t *testing.T) {
	r := Request{Method: "GET", Path: "/api/workflow/abc?includeTasks=true"}

	req, err := BuildRequest(context.Background(), DefaultConfig(), r)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}

	if req.Method != "GET" {
		t.Errorf("Expected method GET, got %s", req.Method)
	}
	if req.URL.Host != "localhost:8080" {
		t.Errorf("Expected host localhost:8080, got %s", req.URL.Host)
	}
	if req.URL.RequestURI() != "/api/workflow/abc?includeTasks=true" {
		t.Errorf("Unexpected request URI %s", req.URL.RequestURI())
	}
	if req.Header.Get("Accept") != "application/json" {
		t.Errorf("Expected Accept application/json, got %q", req.Header.Get("Accept"))
	}
	if req.Header.Get("Content-Type") != "" {
		t.Errorf("GET request should not carry a Content-Type, got %q", req.Header.Get("Content-Type"))
	}
	if req.Body != nil {
		t.Error("GET request should not have a body")
	}
}

func TestBuildRequestDELETE(t *testing.T) {
	r := Request{Method: "DELETE", Path: "/api/workflow/abc/remove"}

	req, err := BuildRequest(context.Background(), DefaultConfig(), r)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if req.Body != nil {
		t.Error("DELETE request should not have a body")
	}
	if req.Header.Get("Accept") != "application/json" {
		t.Errorf("Expected Accept application/json, got %q", req.Header.Get("Accept"))
	}
}

func TestBuildRequestPOSTDefaultBody(t *testing.T) {
	r := Request{Method: "POST", Path: "/api/workflow/abc/restart"}

	req, err := BuildRequest(context.Background(), DefaultConfig(), r)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}

	if req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", req.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected body {}, got %s", data)
	}
}

func TestBuildRequestPUTBody(t *testing.T) {
	body := `{"name":"encode_task","retryCount":3}`
	r := Request{Method: "PUT", Path: "/api/metadata/taskdefs", Body: &body}

	req, err := BuildRequest(context.Background(), DefaultConfig(), r)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}

	data, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if string(data) != body {
		t.Errorf("Expected body %s, got %s", body, data)
	}
}

func TestBuildRequestKeepsRawTarget(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/workflow/a#b?includeTasks=true", "/api/workflow/a#b?includeTasks=true"},
		{"/api/workflow/50%off?includeTasks=true", "/api/workflow/50%off?includeTasks=true"},
		{"/api/workflow/search?query=x y#1&size=100", "/api/workflow/search?query=x%20y#1&size=100"},
	}

	for _, tt := range tests {
		req, err := BuildRequest(context.Background(), DefaultConfig(), Request{Method: "GET", Path: tt.path})
		if err != nil {
			t.Fatalf("Failed to build request for %s: %v", tt.path, err)
		}
		if got := req.URL.RequestURI(); got != tt.want {
			t.Errorf("Expected request URI %s, got %s", tt.want, got)
		}
	}
}

func TestBuildRequestUnsupportedMethod(t *testing.T) {
	_, err := BuildRequest(context.Background(), DefaultConfig(), Request{Method: "PATCH", Path: "/api/event"})
	if err == nil {
		t.Fatal("Expected error for PATCH")
	}
	if !strings.Contains(err.Error(), "unsupported method") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestQueryEncode(t *testing.T) {
	var q query
	if q.encode() != "" {
		t.Errorf("Empty query should encode to empty string, got %q", q.encode())
	}

	q.add("start", "3")
	q.add("count", "10")
	if got := q.encode(); got != "?start=3&count=10" {
		t.Errorf("Expected ?start=3&count=10, got %s", got)
	}
}
