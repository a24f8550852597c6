package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestRequestSendsActorHeaders(t *testing.T) {
	var gotID, gotRole, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Actor-ID")
		gotRole = r.Header.Get("X-Actor-Role")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"open":false}`))
	}))
	defer server.Close()

	origURL, origActor, origRole := baseURL, actorID, actorRole
	baseURL, actorID, actorRole = server.URL, "op-7", "operator"
	defer func() { baseURL, actorID, actorRole = origURL, origActor, origRole }()

	out := captureOutput(t, func() {
		if err := request(http.MethodGet, "/api/v1/cash-sessions/current", nil); err != nil {
			t.Errorf("request failed: %v", err)
		}
	})

	if gotID != "op-7" || gotRole != "operator" {
		t.Fatalf("expected actor headers to be sent, got id=%q role=%q", gotID, gotRole)
	}

	if gotPath != "/api/v1/cash-sessions/current" {
		t.Fatalf("unexpected path: %s", gotPath)
	}

	if !strings.Contains(out, `"open": false`) {
		t.Fatalf("expected rendered response, got %q", out)
	}
}

func TestRequestReportsAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"conflict"}`))
	}))
	defer server.Close()

	origURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = origURL }()

	err := request(http.MethodPost, "/api/v1/cash-sessions/", map[string]any{"opening_amount": "100.00"})
	if err == nil || !strings.Contains(err.Error(), "409") {
		t.Fatalf("expected error mentioning status 409, got %v", err)
	}
}
