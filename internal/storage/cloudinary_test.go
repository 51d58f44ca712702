package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
)

func TestNewCloudinaryRequiresCredentials(t *testing.T) {
	cfg := &config.Config{CloudinaryCloudName: "demo", UploadFolder: "uploads"}
	if _, err := NewCloudinary(cfg, zerolog.Nop()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewCloudinaryUsesFolder(t *testing.T) {
	cfg := &config.Config{
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
		UploadFolder:        "rekam",
	}
	c, err := NewCloudinary(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.folder != "rekam" || !c.cld.Config.URL.Secure {
		t.Fatalf("unexpected client setup: folder=%s secure=%v", c.folder, c.cld.Config.URL.Secure)
	}
}

func TestUnconfiguredFails(t *testing.T) {
	var p Unconfigured
	if _, err := p.Upload(context.Background(), strings.NewReader("x"), "a.txt"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured from Upload, got %v", err)
	}
	if _, err := p.Destroy(context.Background(), "id", "image"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured from Destroy, got %v", err)
	}
}
