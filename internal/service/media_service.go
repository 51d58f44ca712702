package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/model"
)

// DefaultResourceType is used when a delete request names no resource type.
const DefaultResourceType = "image"

// MediaProvider stores and removes binary assets.
type MediaProvider interface {
	Upload(ctx context.Context, r io.Reader, filename string) (*model.UploadResult, error)
	Destroy(ctx context.Context, publicID, resourceType string) (string, error)
}

// OrphanQueue receives assets whose cleanup failed so they can be retried later.
type OrphanQueue interface {
	Enqueue(ctx context.Context, asset model.OrphanAsset) error
}

// MediaService relays uploads and deletes to the media provider.
type MediaService struct {
	provider MediaProvider
	orphans  OrphanQueue
	maxBytes int64
	log      zerolog.Logger
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config, provider MediaProvider, log zerolog.Logger) *MediaService {
	return &MediaService{
		provider: provider,
		maxBytes: cfg.MaxUploadBytes,
		log:      log.With().Str("component", "media_service").Logger(),
	}
}

// SetOrphanQueue routes failed best-effort deletes to q. A nil queue only logs.
func (s *MediaService) SetOrphanQueue(q OrphanQueue) {
	s.orphans = q
}

// MaxBytes is the largest accepted upload.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload sends r to the provider. size is the declared file size.
func (s *MediaService) Upload(ctx context.Context, r io.Reader, filename string, size int64) (*model.UploadResult, error) {
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, size, s.maxBytes)
	}

	res, err := s.provider.Upload(ctx, r, filename)
	if err != nil {
		s.log.Error().Err(err).Str("filename", filename).Msg("Upload failed")
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	return res, nil
}

// Delete destroys publicID on the provider and returns its result string.
func (s *MediaService) Delete(ctx context.Context, publicID, resourceType string) (string, error) {
	if publicID == "" {
		return "", ErrPublicIDRequired
	}
	if resourceType == "" {
		resourceType = DefaultResourceType
	}

	result, err := s.provider.Destroy(ctx, publicID, resourceType)
	if err != nil {
		s.log.Error().Err(err).Str("public_id", publicID).Msg("Delete failed")
		return "", fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	return result, nil
}

// destroyQuietly removes an asset without failing the caller. Failures are
// handed to the orphan queue when one is set.
func (s *MediaService) destroyQuietly(ctx context.Context, publicID, resourceType string) {
	if publicID == "" {
		return
	}
	if _, err := s.Delete(ctx, publicID, resourceType); err != nil {
		if s.orphans == nil {
			s.log.Warn().Err(err).Str("public_id", publicID).Msg("Orphaned asset left on provider")
			return
		}
		if resourceType == "" {
			resourceType = DefaultResourceType
		}
		asset := model.OrphanAsset{
			PublicID:     publicID,
			ResourceType: resourceType,
			QueuedAt:     time.Now().Unix(),
		}
		if qerr := s.orphans.Enqueue(ctx, asset); qerr != nil {
			s.log.Error().Err(qerr).Str("public_id", publicID).Msg("Failed to queue orphaned asset")
			return
		}
		s.log.Warn().Err(err).Str("public_id", publicID).Msg("Asset delete failed, queued for retry")
	}
}
