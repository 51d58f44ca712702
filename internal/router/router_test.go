package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/handler"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/service"
)

// Route guards reject before any handler touches a repository, so the
// services here run without storage.
func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *service.AuthService) {
	t.Helper()
	log := zerolog.Nop()

	auth := service.NewAuthService(cfg, nil, nil, nil, nil, log)
	media := service.NewMediaService(cfg, nil, log)

	handlers := &Handlers{
		Auth:     handler.NewAuthHandler(auth, log),
		Media:    handler.NewMediaHandler(media, log),
		User:     handler.NewUserHandler(nil, nil, log),
		Profile:  handler.NewProfileHandler(nil, log),
		Catalog:  handler.NewCatalogHandler(nil, log),
		Penyakit: handler.NewPenyakitHandler(nil, log),
		Materi:   handler.NewMateriHandler(nil, log),
		Umum:     handler.NewUmumHandler(nil, log),
		System:   handler.NewSystemHandler(nil, log),
	}
	return SetupRouter(auth, handlers, cfg, log), auth
}

func testConfig() *config.Config {
	return &config.Config{
		GinMode:            gin.TestMode,
		JWTSecret:          "router-secret",
		JWTExpiry:          time.Hour,
		BcryptCost:         4,
		MaxUploadBytes:     1024,
		RelayRatePerMinute: 100,
	}
}

func token(t *testing.T, auth *service.AuthService, role model.Role) string {
	t.Helper()
	tok, err := auth.GenerateToken(&model.User{UID: "u-" + string(role), Role: role})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"redis":"disabled"`) {
		t.Fatalf("unexpected health body %s", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}

func TestRouteGuards(t *testing.T) {
	r, auth := newTestRouter(t, testConfig())
	userToken := token(t, auth, model.RoleUser)
	adminToken := token(t, auth, model.RoleAdmin)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		code   string
	}{
		{"no token", http.MethodGet, "/api/v1/admin/users", "", http.StatusUnauthorized, "TOKEN_REQUIRED"},
		{"garbage token", http.MethodGet, "/api/v1/tingkatan", "abc", http.StatusUnauthorized, "TOKEN_INVALID"},
		{"user on admin route", http.MethodGet, "/api/v1/admin/users", userToken, http.StatusForbidden, "PERMISSION_DENIED"},
		{"user writes catalog", http.MethodPost, "/api/v1/admin/tingkatan", userToken, http.StatusForbidden, "PERMISSION_DENIED"},
		{"admin changes role", http.MethodPut, "/api/v1/admin/users/x/role", adminToken, http.StatusForbidden, "PERMISSION_DENIED"},
		{"user exports materi", http.MethodGet, "/api/v1/admin/materi/export", userToken, http.StatusForbidden, "PERMISSION_DENIED"},
		{"media without token", http.MethodPost, "/api/v1/media/upload", "", http.StatusUnauthorized, "TOKEN_REQUIRED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if code := errorCode(t, w); code != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, code)
			}
		})
	}
}

func TestRelayIsOpenByDefault(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/delete", strings.NewReader(`{}`)))
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "PUBLIC_ID_REQUIRED" {
		t.Fatalf("expected PUBLIC_ID_REQUIRED, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		// No Origin header was sent, so CORS stays silent.
		t.Fatalf("unexpected CORS header without Origin")
	}
}

func TestRelayRequiresTokenWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.RelayRequireAuth = true
	r, auth := newTestRouter(t, cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/delete", strings.NewReader(`{}`)))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/delete", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token(t, auth, model.RoleUser))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected the handler to run for an authenticated caller, got %d", w.Code)
	}
}

func TestCORSAllowsAnyOriginByDefault(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}
