package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
	"github.com/stemsi/rekamsehat-backend/internal/response"
	"golang.org/x/sync/errgroup"
)

// destroyConcurrency bounds parallel provider calls when a document is removed.
const destroyConcurrency = 4

// UmumService manages data umum documents and the provider files they own.
type UmumService struct {
	docs  repository.DataUmumRepository
	media *MediaService
	log   zerolog.Logger
}

// NewUmumService creates a new UmumService.
func NewUmumService(docs repository.DataUmumRepository, media *MediaService, log zerolog.Logger) *UmumService {
	return &UmumService{
		docs:  docs,
		media: media,
		log:   log.With().Str("component", "umum_service").Logger(),
	}
}

func (s *UmumService) List(ctx context.Context, page, perPage int) ([]model.DataUmum, *response.Pagination, error) {
	page, perPage, offset := normalizePage(page, perPage)

	docs, total, err := s.docs.ListPaginated(ctx, perPage, offset)
	if err != nil {
		return nil, nil, err
	}
	if docs == nil {
		docs = []model.DataUmum{}
	}
	return docs, newPagination(page, perPage, total), nil
}

func (s *UmumService) Get(ctx context.Context, id string) (*model.DataUmum, error) {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func normalizeFiles(files []model.FileDescriptor) []model.FileDescriptor {
	out := make([]model.FileDescriptor, 0, len(files))
	for _, f := range files {
		if f.ResourceType == "" {
			f.ResourceType = DefaultResourceType
		}
		f.NamaFile = strings.TrimSpace(f.NamaFile)
		out = append(out, f)
	}
	return out
}

func (s *UmumService) Create(ctx context.Context, adminID string, req model.DataUmumRequest) (*model.DataUmum, error) {
	d := &model.DataUmum{
		Judul:     strings.TrimSpace(req.Judul),
		Deskripsi: req.Deskripsi,
		Files:     normalizeFiles(req.Files),
		CreatedBy: adminID,
	}
	if err := s.docs.Create(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info().Str("id", d.ID).Int("files", len(d.Files)).Msg("Data umum created")
	return d, nil
}

// Update replaces the document. Files dropped from the list are removed from
// the provider after the write succeeds.
func (s *UmumService) Update(ctx context.Context, id string, req model.DataUmumRequest) (*model.DataUmum, error) {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	files := normalizeFiles(req.Files)
	keep := make(map[string]struct{}, len(files))
	for _, f := range files {
		keep[f.PublicID] = struct{}{}
	}
	var removed []model.FileDescriptor
	for _, f := range d.Files {
		if _, ok := keep[f.PublicID]; !ok {
			removed = append(removed, f)
		}
	}

	d.Judul = strings.TrimSpace(req.Judul)
	d.Deskripsi = req.Deskripsi
	d.Files = files
	if err := s.docs.Update(ctx, d); err != nil {
		return nil, notFound(err)
	}

	for _, f := range removed {
		s.media.destroyQuietly(ctx, f.PublicID, f.ResourceType)
	}
	return d, nil
}

// Delete removes every attached file from the provider, then the document.
// If any file cannot be removed the document is kept.
func (s *UmumService) Delete(ctx context.Context, id string) error {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return notFound(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(destroyConcurrency)
	for _, f := range d.Files {
		if f.PublicID == "" {
			continue
		}
		g.Go(func() error {
			_, err := s.media.Delete(gctx, f.PublicID, f.ResourceType)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Data umum files not removed; document kept")
		return err
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.log.Info().Str("id", id).Int("files", len(d.Files)).Msg("Data umum deleted")
	return nil
}

// MaxUploadBytes is the largest file AttachFile accepts. Zero means unlimited.
func (s *UmumService) MaxUploadBytes() int64 {
	return s.media.MaxBytes()
}

// AttachFile uploads one file and appends its descriptor to the document.
func (s *UmumService) AttachFile(ctx context.Context, id string, r io.Reader, filename string, size int64) (*model.FileDescriptor, error) {
	if _, err := s.docs.GetByID(ctx, id); err != nil {
		return nil, notFound(err)
	}

	res, err := s.media.Upload(ctx, r, filename, size)
	if err != nil {
		return nil, err
	}
	f := res.Descriptor(filename)
	if f.ResourceType == "" {
		f.ResourceType = DefaultResourceType
	}

	if err := s.docs.AppendFile(ctx, id, f); err != nil {
		s.media.destroyQuietly(ctx, f.PublicID, f.ResourceType)
		return nil, fmt.Errorf("append file: %w", notFound(err))
	}
	return &f, nil
}
