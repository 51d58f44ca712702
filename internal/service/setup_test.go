package service

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
)

var testLog = zerolog.Nop()

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		BcryptCost:     4,
		MaxUploadBytes: 1024,
	}
}
