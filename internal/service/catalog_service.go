package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
)

// CatalogService manages tingkatan, jenis penyakit and obat. The two list
// endpoints are read-through cached in Redis.
type CatalogService struct {
	tingkatan repository.TingkatanRepository
	jenis     repository.JenisPenyakitRepository
	spesifik  repository.DataSpesifikRepository
	penyakit  repository.DataPenyakitRepository
	rdb       *redis.Client
	ttl       time.Duration
	log       zerolog.Logger
}

// NewCatalogService creates a new CatalogService. rdb may be nil to disable caching.
func NewCatalogService(
	cfg *config.Config,
	rdb *redis.Client,
	tingkatan repository.TingkatanRepository,
	jenis repository.JenisPenyakitRepository,
	spesifik repository.DataSpesifikRepository,
	penyakit repository.DataPenyakitRepository,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		tingkatan: tingkatan,
		jenis:     jenis,
		spesifik:  spesifik,
		penyakit:  penyakit,
		rdb:       rdb,
		ttl:       cfg.CatalogCacheTTL,
		log:       log.With().Str("component", "catalog_service").Logger(),
	}
}

// cached returns the value stored at key, or loads and stores it.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) (T, error)) (T, error) {
	if s.rdb != nil {
		data, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				return v, nil
			}
			s.log.Warn().Str("key", key).Msg("Discarding unreadable cache entry")
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(v); err == nil {
			if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
			}
		}
	}
	return v, nil
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache invalidation failed")
	}
}

// Prewarm loads both catalogs into the cache.
func (s *CatalogService) Prewarm(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	t, err := s.ListTingkatan(ctx)
	if err != nil {
		return fmt.Errorf("prewarm tingkatan: %w", err)
	}
	j, err := s.ListJenis(ctx)
	if err != nil {
		return fmt.Errorf("prewarm jenis penyakit: %w", err)
	}
	s.log.Info().Int("tingkatan", len(t)).Int("jenis_penyakit", len(j)).Msg("Catalog cache warmed")
	return nil
}

// ─── Tingkatan ─────────────────────────────────────────────────────────

// ListTingkatan returns every tingkatan ordered by name.
func (s *CatalogService) ListTingkatan(ctx context.Context) ([]model.Tingkatan, error) {
	return cached(ctx, s, config.CacheKey.TingkatanCatalogKey(), func(ctx context.Context) ([]model.Tingkatan, error) {
		list, err := s.tingkatan.GetAll(ctx)
		if list == nil && err == nil {
			list = []model.Tingkatan{}
		}
		return list, err
	})
}

func (s *CatalogService) CreateTingkatan(ctx context.Context, req model.TingkatanRequest) (*model.Tingkatan, error) {
	t := &model.Tingkatan{NamaTingkatan: strings.TrimSpace(req.NamaTingkatan)}
	if err := s.tingkatan.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, config.CacheKey.TingkatanCatalogKey())
	return t, nil
}

func (s *CatalogService) UpdateTingkatan(ctx context.Context, id string, req model.TingkatanRequest) (*model.Tingkatan, error) {
	t := &model.Tingkatan{ID: id, NamaTingkatan: strings.TrimSpace(req.NamaTingkatan)}
	if err := s.tingkatan.Update(ctx, t); err != nil {
		return nil, notFound(err)
	}
	s.invalidate(ctx, config.CacheKey.TingkatanCatalogKey())
	return t, nil
}

// DeleteTingkatan refuses while any profile extension references the entry.
func (s *CatalogService) DeleteTingkatan(ctx context.Context, id string) error {
	used, err := s.spesifik.ExistsByTingkatan(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return ErrDependencyExists
	}
	if err := s.tingkatan.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.invalidate(ctx, config.CacheKey.TingkatanCatalogKey())
	return nil
}

// ─── Jenis penyakit ────────────────────────────────────────────────────

// ListJenis returns every jenis penyakit ordered by name, without obat.
func (s *CatalogService) ListJenis(ctx context.Context) ([]model.JenisPenyakit, error) {
	return cached(ctx, s, config.CacheKey.JenisPenyakitCatalogKey(), func(ctx context.Context) ([]model.JenisPenyakit, error) {
		list, err := s.jenis.GetAll(ctx)
		if list == nil && err == nil {
			list = []model.JenisPenyakit{}
		}
		return list, err
	})
}

// GetJenis returns one jenis penyakit with its obat list.
func (s *CatalogService) GetJenis(ctx context.Context, id string) (*model.JenisPenyakit, error) {
	j, err := s.jenis.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	obat, err := s.jenis.ListObat(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list obat: %w", err)
	}
	j.Obat = obat
	return j, nil
}

func cleanAntisipasi(items []string) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func (s *CatalogService) CreateJenis(ctx context.Context, req model.JenisPenyakitRequest) (*model.JenisPenyakit, error) {
	j := &model.JenisPenyakit{
		NamaPenyakit: strings.TrimSpace(req.NamaPenyakit),
		Deskripsi:    req.Deskripsi,
		Tips:         req.Tips,
		Antisipasi:   cleanAntisipasi(req.Antisipasi),
	}
	if err := s.jenis.Create(ctx, j); err != nil {
		return nil, err
	}
	s.invalidate(ctx, config.CacheKey.JenisPenyakitCatalogKey())
	return j, nil
}

func (s *CatalogService) UpdateJenis(ctx context.Context, id string, req model.JenisPenyakitRequest) (*model.JenisPenyakit, error) {
	j := &model.JenisPenyakit{
		ID:           id,
		NamaPenyakit: strings.TrimSpace(req.NamaPenyakit),
		Deskripsi:    req.Deskripsi,
		Tips:         req.Tips,
		Antisipasi:   cleanAntisipasi(req.Antisipasi),
	}
	if err := s.jenis.Update(ctx, j); err != nil {
		return nil, notFound(err)
	}
	s.invalidate(ctx, config.CacheKey.JenisPenyakitCatalogKey())
	return s.GetJenis(ctx, id)
}

// DeleteJenis removes the entry and its obat. Refused while records use it.
func (s *CatalogService) DeleteJenis(ctx context.Context, id string) error {
	if _, err := s.jenis.GetByID(ctx, id); err != nil {
		return notFound(err)
	}
	used, err := s.penyakit.ExistsByJenis(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return ErrDependencyExists
	}
	if err := s.jenis.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.invalidate(ctx, config.CacheKey.JenisPenyakitCatalogKey())
	s.log.Info().Str("jenis_penyakit_id", id).Msg("Jenis penyakit deleted")
	return nil
}

// ─── Obat ──────────────────────────────────────────────────────────────

func (s *CatalogService) requireJenis(ctx context.Context, jenisID string) error {
	if _, err := s.jenis.GetByID(ctx, jenisID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownJenis
		}
		return err
	}
	return nil
}

func (s *CatalogService) ListObat(ctx context.Context, jenisID string) ([]model.Obat, error) {
	if err := s.requireJenis(ctx, jenisID); err != nil {
		return nil, err
	}
	list, err := s.jenis.ListObat(ctx, jenisID)
	if list == nil && err == nil {
		list = []model.Obat{}
	}
	return list, err
}

func (s *CatalogService) CreateObat(ctx context.Context, jenisID string, req model.ObatRequest) (*model.Obat, error) {
	if err := s.requireJenis(ctx, jenisID); err != nil {
		return nil, err
	}
	o := &model.Obat{
		NamaObat:   strings.TrimSpace(req.NamaObat),
		Dosis:      req.Dosis,
		Keterangan: req.Keterangan,
	}
	if err := s.jenis.CreateObat(ctx, jenisID, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *CatalogService) UpdateObat(ctx context.Context, jenisID, obatID string, req model.ObatRequest) (*model.Obat, error) {
	if err := s.requireJenis(ctx, jenisID); err != nil {
		return nil, err
	}
	o := &model.Obat{
		ID:         obatID,
		NamaObat:   strings.TrimSpace(req.NamaObat),
		Dosis:      req.Dosis,
		Keterangan: req.Keterangan,
	}
	if err := s.jenis.UpdateObat(ctx, jenisID, o); err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

func (s *CatalogService) DeleteObat(ctx context.Context, jenisID, obatID string) error {
	if err := s.requireJenis(ctx, jenisID); err != nil {
		return err
	}
	if err := s.jenis.DeleteObat(ctx, jenisID, obatID); err != nil {
		return notFound(err)
	}
	return nil
}
