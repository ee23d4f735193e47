package cmd

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type capturedRequest struct {
	method string
	uri    string
	body   string
}

// newConductorServer starts a mock server and returns the --ip/--port flags
// pointing at it
func newConductorServer(t *testing.T, status int, body string) ([]string, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		captured.method = r.Method
		captured.uri = r.RequestURI
		captured.body = string(data)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return serverFlags(t, server.URL), captured
}

func serverFlags(t *testing.T, serverURL string) []string {
	t.Helper()
	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("Failed to parse server URL: %v", err)
	}
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("Failed to split host and port: %v", err)
	}
	return []string{"--ip", host, "--port", port}
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCommandName(t *testing.T) {
	rootCmd := NewRootCmd(io.Discard, io.Discard)

	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"getWorkflow", "abc"}, "getWorkflow"},
		{[]string{"--ip", "10.0.0.5", "--port", "9090", "getTask", "t1"}, "getTask"},
		{[]string{"--port=9090", "getTask"}, "getTask"},
		{[]string{"--strict", "getTask"}, "getTask"},
		{[]string{"--ip", "10.0.0.5"}, ""},
		{[]string{"-h"}, ""},
		{[]string{"--help"}, ""},
		{[]string{"--", "getConfiguration"}, "getConfiguration"},
	}

	for _, tt := range tests {
		if got := commandName(rootCmd, tt.args); got != tt.want {
			t.Errorf("commandName(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestRunWithoutCommand(t *testing.T) {
	for _, args := range [][]string{nil, {"-h"}, {"--help"}, {"--ip", "10.0.0.5"}} {
		code, stdout, _ := runCLI(args...)
		if code != 1 {
			t.Errorf("%v: expected exit code 1, got %d", args, code)
		}
		if !strings.Contains(stdout, "Workflow Management:") {
			t.Errorf("%v: expected grouped usage, got:\n%s", args, stdout)
		}
	}
}

func TestRunSubcommandHelp(t *testing.T) {
	code, stdout, _ := runCLI("getWorkflow", "--help")
	if code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
	for _, want := range []string{"Sends GET /api/workflow/{workflowId}", "--includeTasks", "workflowId"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Help missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunGetWorkflow(t *testing.T) {
	flags, captured := newConductorServer(t, http.StatusOK, `{"workflowId":"123e4567"}`)

	args := append(flags, "getWorkflow", "123e4567", "--includeTasks", "false")
	code, stdout, stderr := runCLI(args...)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr)
	}

	if captured.method != "GET" || captured.uri != "/api/workflow/123e4567?includeTasks=false" {
		t.Errorf("Unexpected request %s %s", captured.method, captured.uri)
	}
	if !strings.Contains(stdout, "Status: 200") || !strings.Contains(stdout, `{"workflowId":"123e4567"}`) {
		t.Errorf("Trace missing response:\n%s", stdout)
	}
}

func TestRunDefaultsAndOrder(t *testing.T) {
	flags, captured := newConductorServer(t, http.StatusOK, "[]")

	args := append(flags, "searchWorkflows", "--freeText", "failed", "--sort", "DESC", "--start", "10")
	if code, _, stderr := runCLI(args...); code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr)
	}

	if captured.uri != "/api/workflow/search?start=10&sort=DESC&size=100&freeText=failed" {
		t.Errorf("Unexpected request URI %s", captured.uri)
	}
}

func TestRunStartWorkflowBody(t *testing.T) {
	flags, captured := newConductorServer(t, http.StatusOK, "8f1c2a6e")

	args := append(flags, "startWorkflow", "encode_and_deploy", "--version", "2", "--body", `{"fileLocation":"s3://bucket"}`)
	if code, _, stderr := runCLI(args...); code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr)
	}

	if captured.method != "POST" || captured.uri != "/api/workflow/encode_and_deploy?version=2" {
		t.Errorf("Unexpected request %s %s", captured.method, captured.uri)
	}
	if captured.body != `{"fileLocation":"s3://bucket"}` {
		t.Errorf("Unexpected body %s", captured.body)
	}
}

func TestRunBodyFromFile(t *testing.T) {
	flags, captured := newConductorServer(t, http.StatusNoContent, "")

	body := `[{"name":"encode_task","retryCount":3}]`
	path := filepath.Join(t.TempDir(), "taskdefs.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write body file: %v", err)
	}

	args := append(flags, "createTaskMetadata", "@"+path)
	if code, _, stderr := runCLI(args...); code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr)
	}

	if captured.uri != "/api/metadata/taskdefs" || captured.body != body {
		t.Errorf("Unexpected request %s with body %s", captured.uri, captured.body)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"invalid choice", []string{"getWorkflow", "abc", "--includeTasks", "yes"}},
		{"non-positive count", []string{"getPendingTasks", "encode_task", "--count", "0"}},
		{"missing argument", []string{"getWorkflow"}},
		{"too many arguments", []string{"getConfiguration", "extra"}},
		{"unknown flag", []string{"getTask", "t1", "--verbose"}},
		{"missing body", []string{"createEventHandler"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			if code != 1 {
				t.Errorf("Expected exit code 1, got %d", code)
			}
			if !strings.Contains(stderr, "Error:") || !strings.Contains(stderr, "Usage:") {
				t.Errorf("Expected error and usage on stderr, got:\n%s", stderr)
			}
			if strings.Contains(stdout, "Sending") {
				t.Errorf("No request should be sent:\n%s", stdout)
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	code, _, stderr := runCLI("frobnicateWorkflow")
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "unknown command") {
		t.Errorf("Unexpected stderr:\n%s", stderr)
	}
}

func TestRunNon2xx(t *testing.T) {
	flags, _ := newConductorServer(t, http.StatusNotFound, `{"code":"NOT_FOUND"}`)

	code, stdout, _ := runCLI(append(flags, "getTask", "missing")...)
	if code != 0 {
		t.Errorf("Expected exit code 0 without --strict, got %d", code)
	}
	if !strings.Contains(stdout, "Status: 404") {
		t.Errorf("Trace missing status:\n%s", stdout)
	}

	code, _, stderr := runCLI(append(flags, "--strict", "getTask", "missing")...)
	if code != 1 {
		t.Errorf("Expected exit code 1 with --strict, got %d", code)
	}
	if !strings.Contains(stderr, "server responded with status 404") {
		t.Errorf("Unexpected stderr:\n%s", stderr)
	}
}

func TestRunTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	flags := serverFlags(t, server.URL)
	server.Close()

	code, _, stderr := runCLI(append(flags, "getConfiguration")...)
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "Error: failed to send request") {
		t.Errorf("Unexpected stderr:\n%s", stderr)
	}
}

func TestRunInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad port", []string{"--port", "http", "getConfiguration"}},
		{"bad log level", []string{"--log-level", "loud", "getConfiguration"}},
		{"missing config file", []string{"--config", filepath.Join(t.TempDir(), "absent.toml"), "getConfiguration"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			if code != 1 {
				t.Errorf("Expected exit code 1, got %d", code)
			}
			if !strings.Contains(stderr, "Error:") {
				t.Errorf("Expected error on stderr, got:\n%s", stderr)
			}
			if strings.Contains(stdout, "Sending") {
				t.Errorf("No request should be sent:\n%s", stdout)
			}
		})
	}
}

func TestRunEnvironment(t *testing.T) {
	flags, captured := newConductorServer(t, http.StatusOK, "{}")
	t.Setenv("CONDUCTOR_IP", flags[1])
	t.Setenv("CONDUCTOR_PORT", flags[3])

	if code, _, stderr := runCLI("getConfiguration"); code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr)
	}
	if captured.uri != "/api/admin/config" {
		t.Errorf("Unexpected request URI %s", captured.uri)
	}
}

func TestRunConfigFile(t *testing.T) {
	flags, captured := newConductorServer(t, http.StatusOK, "{}")

	path := filepath.Join(t.TempDir(), "conductor.toml")
	content := "ip = \"" + flags[1] + "\"\nport = \"" + flags[3] + "\"\ntimeout = \"5s\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if code, _, stderr := runCLI("--config", path, "getTasksQueue"); code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr)
	}
	if captured.uri != "/api/tasks/queue/all" {
		t.Errorf("Unexpected request URI %s", captured.uri)
	}
}
