package config

import (
	"testing"
	"time"
)

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
	t.Setenv("CLOUDINARY_FOLDER", "rekam")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "2")
	t.Setenv("JWT_EXPIRY_HOURS", "3")
	t.Setenv("RELAY_REQUIRE_AUTH", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")

	cfg := Load()
	if cfg.ServerPort != "9090" {
		t.Fatalf("expected PORT override, got %s", cfg.ServerPort)
	}
	if cfg.CloudinaryCloudName != "demo" || cfg.CloudinaryAPIKey != "key" || cfg.CloudinaryAPISecret != "secret" {
		t.Fatalf("expected cloudinary credentials, got %+v", cfg)
	}
	if cfg.UploadFolder != "rekam" {
		t.Fatalf("expected folder rekam, got %s", cfg.UploadFolder)
	}
	if cfg.MaxUploadBytes != 2*1024*1024 {
		t.Fatalf("expected 2MB limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.JWTExpiry != 3*time.Hour {
		t.Fatalf("expected 3h expiry, got %s", cfg.JWTExpiry)
	}
	if !cfg.RelayRequireAuth {
		t.Fatalf("expected relay auth enabled")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadFallsBackToServerPort(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("RELAY_REQUIRE_AUTH", "not-a-bool")

	cfg := Load()
	if cfg.ServerPort != "7070" {
		t.Fatalf("expected SERVER_PORT fallback, got %s", cfg.ServerPort)
	}
	if cfg.RelayRequireAuth {
		t.Fatalf("invalid bool should fall back to false")
	}
}
