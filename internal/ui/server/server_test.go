package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/Its-donkey/auth-toggle/internal/config"
	"github.com/Its-donkey/auth-toggle/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.App.Templates = filepath.Join("..", "..", "..", "ui", "templates")
	cfg.App.Assets = t.TempDir()
	cfg.Widget.StorageKey = "authViewTest"
	return cfg
}

func newTestServer(t *testing.T) (*server, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	srv, err := newServer(Options{
		Config: testConfig(t),
		Logger: logging.New("test", logging.INFO, &buf),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, &buf
}

func TestAuthPageSatisfiesWidgetContract(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	wrapper := doc.Find(".wrapper")
	if wrapper.Length() != 1 {
		t.Fatalf("expected one wrapper, got %d", wrapper.Length())
	}
	if key, _ := wrapper.Attr("data-storage-key"); key != "authViewTest" {
		t.Fatalf("expected configured storage key, got %q", key)
	}
	if wrapper.Find(".login-form").Length() != 1 || wrapper.Find(".register-form").Length() != 1 {
		t.Fatal("both panes must be nested in the wrapper")
	}
	targets := doc.Find(".switch-link").Map(func(_ int, s *goquery.Selection) string {
		v, _ := s.Attr("data-view")
		return v
	})
	if strings.Join(targets, ",") != "register,login" {
		t.Fatalf("unexpected switch targets: %v", targets)
	}
	if doc.Find(`script[src="/wasm_exec.js"]`).Length() != 1 {
		t.Fatal("expected wasm loader script")
	}
}

func TestSelfCheckOnShippedTemplatesIsClean(t *testing.T) {
	srv, buf := newTestServer(t)
	report, err := srv.selfCheck()
	if err != nil {
		t.Fatalf("self check: %v", err)
	}
	if problems := report.Problems(); len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no warnings, got %s", buf.String())
	}
}

func TestSelfCheckWarnsOnBrokenTemplate(t *testing.T) {
	var buf bytes.Buffer
	tmpl := template.Must(template.New("auth").Parse(`{{define "base"}}<div class="wrapper"><form class="login-form"></form></div>{{end}}`))
	srv, err := newServer(Options{
		Config:    testConfig(t),
		Logger:    logging.New("test", logging.WARN, &buf),
		Templates: map[string]*template.Template{"auth": tmpl},
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	report, err := srv.selfCheck()
	if err != nil {
		t.Fatalf("self check: %v", err)
	}
	if !report.Fatal() {
		t.Fatal("expected fatal report")
	}
	if !strings.Contains(buf.String(), "not found") {
		t.Fatalf("expected structure warning, got %s", buf.String())
	}
}

func TestRenderFailureLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	tmpl := template.Must(template.New("auth").Parse(`{{define "base"}}{{.Missing}}{{end}}`))
	srv, err := newServer(Options{
		Config:    testConfig(t),
		Logger:    logging.New("test", logging.INFO, &buf),
		Templates: map[string]*template.Template{"auth": tmpl},
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	id := rr.Header().Get(logging.RequestIDHeader)
	if id == "" {
		t.Fatal("expected request id header")
	}
	var rendered *logging.Entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry logging.Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		if entry.Category == logCategory {
			rendered = &entry
		}
	}
	if rendered == nil {
		t.Fatalf("expected render error entry, got %s", buf.String())
	}
	if rendered.RequestID != id || rendered.Level != "ERROR" || rendered.Error == "" {
		t.Fatalf("unexpected render entry: %+v", rendered)
	}
	if rendered.Fields["path"] != "/" {
		t.Fatalf("expected request path field: %+v", rendered.Fields)
	}
}

func TestWasmAssetContentType(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(filepath.Join(cfg.App.Assets, "main.wasm"), []byte("\x00asm"), 0o644); err != nil {
		t.Fatalf("write wasm: %v", err)
	}
	handler, err := NewHandler(Options{Config: cfg})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/main.wasm", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/wasm" {
		t.Fatalf("expected application/wasm, got %q", ct)
	}
	if rr.Header().Get(logging.RequestIDHeader) == "" {
		t.Fatal("expected request id header from logging middleware")
	}
}

func TestHealthzAndUnknownRoutes(t *testing.T) {
	handler, err := NewHandler(Options{Config: testConfig(t)})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response: %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestNewServerRequiresAuthTemplate(t *testing.T) {
	_, err := newServer(Options{
		Config:    testConfig(t),
		Templates: map[string]*template.Template{},
	})
	if err == nil {
		t.Fatal("expected error when auth template is missing")
	}
}
