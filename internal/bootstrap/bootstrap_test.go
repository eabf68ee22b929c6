package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/config"
	"github.com/yigit/canvasstudy/internal/pkg/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.Storage.DownloadRoots = []string{t.TempDir()}
	cfg.Database.Enabled = false
	cfg.Redis.Addr = ""
	cfg.LLM.APIKey = ""
	return cfg
}

func buildRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *Dependencies) {
	t.Helper()
	lgr := zerolog.Nop()

	database, err := SetupDatabase(cfg, lgr)
	if err != nil || database != nil {
		t.Fatalf("SetupDatabase disabled = %v, %v", database, err)
	}
	extractionCache, enabled, err := SetupCache(cfg, lgr)
	if err != nil || enabled {
		t.Fatalf("SetupCache disabled = %v, %v", enabled, err)
	}
	if _, ok := extractionCache.(cache.Noop); !ok {
		t.Fatalf("cache = %T, want cache.Noop", extractionCache)
	}

	deps, err := BuildDependencies(cfg, database, extractionCache, enabled, lgr)
	if err != nil {
		t.Fatalf("BuildDependencies: %v", err)
	}
	t.Cleanup(deps.Close)

	router, err := SetupRouter(cfg, deps, lgr)
	if err != nil {
		t.Fatalf("SetupRouter: %v", err)
	}
	return router, deps
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouterHealthReportsDependencies(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t))

	w := serve(router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp dto.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{"llm": "down", "database": "disabled", "cache": "disabled"}
	for name, state := range want {
		if resp.Services[name] != state {
			t.Fatalf("services[%s] = %q, want %q", name, resp.Services[name], state)
		}
	}
	if w.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("missing trace header")
	}
}

func TestRouterServesEndpoints(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"downloaded files", http.MethodGet, "/files/downloaded", "", 200},
		{"empty archive", http.MethodGet, "/notes", "", 200},
		{"archive note", http.MethodPost, "/notes", `{"fileName":"a.pdf","content":"## Summary\nCells divide."}`, 201},
		{"missing credentials", http.MethodPost, "/validate", `{}`, 400},
		{"permissions without credentials", http.MethodPost, "/validate/permissions", `{"courseId":"7"}`, 400},
		{"youtube without worker", http.MethodPost, "/extract-text/youtube", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`, 415},
		{"not a youtube link", http.MethodPost, "/extract-text/youtube", `{"url":"https://example.com/v"}`, 400},
		{"llm not configured", http.MethodPost, "/ai/generate-notes", `{"text":"cells"}`, 503},
		{"empty question", http.MethodPost, "/ai/answer-question", `{"question":""}`, 400},
		{"unknown route", http.MethodGet, "/nope", "", 404},
		{"swagger doc", http.MethodGet, "/swagger/doc.json", "", 200},
	}
	for _, tt := range tests {
		w := serve(router, tt.method, tt.path, tt.body)
		if w.Code != tt.status {
			t.Fatalf("%s: status = %d, want %d (%s)", tt.name, w.Code, tt.status, w.Body.String())
		}
	}

	w := serve(router, http.MethodGet, "/notes", "")
	var list dto.NoteListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Notes) != 1 || list.Notes[0].Summary != "Cells divide." {
		t.Fatalf("notes = %+v", list.Notes)
	}
}

func TestRouterExposesMetrics(t *testing.T) {
	router, deps := buildRouter(t, testConfig(t))
	if deps.Metrics == nil {
		t.Fatalf("metrics should be enabled by default")
	}

	serve(router, http.MethodPost, "/notes", `{"content":"## Summary\nAtoms."}`)
	serve(router, http.MethodPost, "/notes", `{"content":"## Summary\nIons."}`)
	serve(router, http.MethodGet, "/nope", "")

	w := serve(router, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"canvasstudy_archived_notes 2",
		`canvasstudy_http_requests_total{method="POST",route="/notes",status="201"} 2`,
		`canvasstudy_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %q:\n%s", want, body)
		}
	}
}

func TestRouterWithoutMetrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	router, deps := buildRouter(t, cfg)
	if deps.Metrics != nil {
		t.Fatalf("metrics registry built while disabled")
	}
	if w := serve(router, http.MethodGet, "/metrics", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCORSConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		origins     []string
		allowAll    bool
		credentials bool
	}{
		{"wildcard", []string{"*"}, true, false},
		{"empty", nil, true, false},
		{"explicit", []string{"http://localhost:3000", " "}, false, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &config.Config{}
			cfg.CORS.AllowedOrigins = tt.origins
			got := CORSConfig(cfg)
			if got.AllowAllOrigins != tt.allowAll || got.AllowCredentials != tt.credentials {
				t.Fatalf("got allowAll=%v credentials=%v", got.AllowAllOrigins, got.AllowCredentials)
			}
			if !tt.allowAll && (len(got.AllowOrigins) != 1 || got.AllowOrigins[0] != "http://localhost:3000") {
				t.Fatalf("origins = %v", got.AllowOrigins)
			}
			if err := got.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
		})
	}
}

func TestConfigPathEnvOverride(t *testing.T) {
	t.Setenv(ConfigPathEnv, "/etc/canvasstudy.yaml")
	if got := ConfigPath(); got != "/etc/canvasstudy.yaml" {
		t.Fatalf("ConfigPath = %q", got)
	}
	t.Setenv(ConfigPathEnv, "")
	if got := ConfigPath(); got != filepath.Join("configs", "config.yaml") {
		t.Fatalf("ConfigPath = %q", got)
	}
}
