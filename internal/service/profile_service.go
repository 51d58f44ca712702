package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
)

// ProfileService handles the caller's account and profile extension.
type ProfileService struct {
	auth      *AuthService
	users     repository.UserRepository
	spesifik  repository.DataSpesifikRepository
	tingkatan repository.TingkatanRepository
	media     *MediaService
	log       zerolog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	auth *AuthService,
	users repository.UserRepository,
	spesifik repository.DataSpesifikRepository,
	tingkatan repository.TingkatanRepository,
	media *MediaService,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		auth:      auth,
		users:     users,
		spesifik:  spesifik,
		tingkatan: tingkatan,
		media:     media,
		log:       log.With().Str("component", "profile_service").Logger(),
	}
}

// UpdateAccount edits nama, lembaga or password. Empty fields are kept.
func (s *ProfileService) UpdateAccount(ctx context.Context, uid string, req model.UpdateProfileRequest) (*model.User, error) {
	fields := map[string]interface{}{}
	if v := strings.TrimSpace(req.Nama); v != "" {
		fields["nama"] = v
	}
	if v := strings.TrimSpace(req.Lembaga); v != "" {
		fields["lembaga"] = v
	}
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = hash
	}
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	if err := s.users.Update(ctx, uid, fields); err != nil {
		return nil, notFound(err)
	}
	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// GetSpesifik returns the profile extension of uid.
func (s *ProfileService) GetSpesifik(ctx context.Context, uid string) (*model.DataSpesifik, error) {
	d, err := s.spesifik.Get(ctx, uid)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

// UpsertSpesifik creates or replaces the profile extension of uid. When the
// photo changes, the previous asset is removed from the provider.
func (s *ProfileService) UpsertSpesifik(ctx context.Context, uid string, req model.UpsertDataSpesifikRequest) (*model.DataSpesifik, error) {
	if _, err := s.users.GetByID(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	if req.IDTingkatan != "" {
		if _, err := s.tingkatan.GetByID(ctx, req.IDTingkatan); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUnknownTingkatan
			}
			return nil, err
		}
	}

	var oldFoto *model.Foto
	if prev, err := s.spesifik.Get(ctx, uid); err == nil {
		oldFoto = prev.Foto
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	foto := req.Foto
	if foto != nil && foto.URL == "" && foto.PublicID == "" {
		foto = nil
	}

	d := &model.DataSpesifik{
		UserID:      uid,
		NRP:         strings.TrimSpace(req.NRP),
		KTA:         strings.TrimSpace(req.KTA),
		LSPSN:       strings.TrimSpace(req.LSPSN),
		TTL:         strings.TrimSpace(req.TTL),
		IDTingkatan: req.IDTingkatan,
		Foto:        foto,
		UpdatedAt:   time.Now(),
	}
	if err := s.spesifik.Upsert(ctx, d); err != nil {
		return nil, fmt.Errorf("save data spesifik: %w", err)
	}

	if oldFoto != nil && oldFoto.PublicID != "" && (foto == nil || foto.PublicID != oldFoto.PublicID) {
		s.media.destroyQuietly(ctx, oldFoto.PublicID, DefaultResourceType)
	}
	return d, nil
}
