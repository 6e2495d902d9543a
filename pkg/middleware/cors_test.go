package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsHandler(cfg CORSConfig) http.Handler {
	return CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doCORS(t *testing.T, cfg CORSConfig, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/api/groups", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rr := httptest.NewRecorder()
	corsHandler(cfg).ServeHTTP(rr, req)
	return rr
}

func TestCORS_OriginAllowance(t *testing.T) {
	production := CORSConfig{
		AllowedOrigins: []string{"https://studysphere.app", "https://admin.studysphere.app"},
		Environment:    "production",
	}

	tests := []struct {
		name      string
		cfg       CORSConfig
		origin    string
		wantAllow string
		wantVary  string
	}{
		{
			name:      "development wildcard allows any origin",
			cfg:       CORSConfig{AllowedOrigins: []string{"*"}, Environment: "development"},
			origin:    "https://evil.example",
			wantAllow: "*",
		},
		{
			name:      "development wildcard without origin header",
			cfg:       CORSConfig{AllowedOrigins: []string{"*"}, Environment: "development"},
			wantAllow: "*",
		},
		{
			name:      "production echoes listed origin",
			cfg:       production,
			origin:    "https://studysphere.app",
			wantAllow: "https://studysphere.app",
			wantVary:  "Origin",
		},
		{
			name:      "production echoes second listed origin",
			cfg:       production,
			origin:    "https://admin.studysphere.app",
			wantAllow: "https://admin.studysphere.app",
			wantVary:  "Origin",
		},
		{
			name:   "production omits header for unlisted origin",
			cfg:    production,
			origin: "https://evil.example",
		},
		{
			name: "production omits header without origin",
			cfg:  production,
		},
		{
			name: "explicit wildcard overrides production",
			cfg: CORSConfig{
				AllowedOrigins: []string{"https://studysphere.app", "*"},
				Environment:    "production",
			},
			origin:    "https://anything.example",
			wantAllow: "*",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doCORS(t, tc.cfg, http.MethodGet, tc.origin)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.wantAllow, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.wantVary, rr.Header().Get("Vary"))
		})
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/groups", nil)
	req.Header.Set("Origin", "https://studysphere.app")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestCORS_HeaderDefaults(t *testing.T) {
	rr := doCORS(t, CORSConfig{AllowedOrigins: []string{"*"}, Environment: "development"}, http.MethodGet, "")

	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept, Authorization, Content-Type, X-Correlation-ID", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", rr.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_HeaderOverrides(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins:   []string{"https://studysphere.app"},
		AllowedHeaders:   []string{"Accept", "Authorization", "X-Custom"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		MaxAge:           7200,
		AllowCredentials: true,
		Environment:      "production",
	}

	rr := doCORS(t, cfg, http.MethodGet, "https://studysphere.app")

	assert.Equal(t, "Accept, Authorization, X-Custom", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "X-Correlation-ID", rr.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "7200", rr.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_DefaultConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.NotContains(t, cfg.AllowedMethods, "PATCH")
	assert.Equal(t, 3600, cfg.MaxAge)
	assert.Equal(t, "development", cfg.Environment)
}
