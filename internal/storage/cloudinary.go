package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/model"
)

// ErrNotConfigured is returned when the provider credentials are missing.
var ErrNotConfigured = errors.New("cloudinary credentials are not configured")

// Cloudinary uploads and destroys assets on Cloudinary.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
	log    zerolog.Logger
}

// NewCloudinary builds the provider client from the configured credentials.
func NewCloudinary(cfg *config.Config, log zerolog.Logger) (*Cloudinary, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &Cloudinary{
		cld:    cld,
		folder: cfg.UploadFolder,
		log:    log.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload streams r into the configured folder with automatic resource type detection.
func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, filename string) (*model.UploadResult, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       c.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("upload %s: %s", filename, res.Error.Message)
	}

	c.log.Debug().Str("public_id", res.PublicID).Int("bytes", res.Bytes).Msg("Asset uploaded")

	originalName := res.OriginalFilename
	if originalName == "" {
		originalName = filename
	}
	return &model.UploadResult{
		AssetID:          res.AssetID,
		PublicID:         res.PublicID,
		Version:          res.Version,
		Signature:        res.Signature,
		Width:            res.Width,
		Height:           res.Height,
		Format:           res.Format,
		ResourceType:     res.ResourceType,
		CreatedAt:        res.CreatedAt,
		Bytes:            res.Bytes,
		Type:             res.Type,
		URL:              res.URL,
		SecureURL:        res.SecureURL,
		Folder:           c.folder,
		OriginalFilename: originalName,
	}, nil
}

// Destroy deletes an asset and returns the provider's result string
// ("ok" or "not found").
func (c *Cloudinary) Destroy(ctx context.Context, publicID, resourceType string) (string, error) {
	if resourceType == "" {
		resourceType = "image"
	}
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("destroy %s: %s", publicID, res.Error.Message)
	}

	c.log.Debug().Str("public_id", publicID).Str("result", res.Result).Msg("Asset destroyed")
	return res.Result, nil
}

// Unconfigured stands in for the provider when credentials are missing so the
// API still serves. Every call fails with ErrNotConfigured.
type Unconfigured struct{}

func (Unconfigured) Upload(context.Context, io.Reader, string) (*model.UploadResult, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Destroy(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}
