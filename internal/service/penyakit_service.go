package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
	"github.com/stemsi/rekamsehat-backend/internal/response"
)

// PenyakitService manages lab result records. nama_penyakit and status are
// always derived server-side from the referenced jenis penyakit.
type PenyakitService struct {
	records repository.DataPenyakitRepository
	jenis   repository.JenisPenyakitRepository
	users   repository.UserRepository
	log     zerolog.Logger
}

// NewPenyakitService creates a new PenyakitService.
func NewPenyakitService(
	records repository.DataPenyakitRepository,
	jenis repository.JenisPenyakitRepository,
	users repository.UserRepository,
	log zerolog.Logger,
) *PenyakitService {
	return &PenyakitService{
		records: records,
		jenis:   jenis,
		users:   users,
		log:     log.With().Str("component", "penyakit_service").Logger(),
	}
}

func (s *PenyakitService) List(ctx context.Context, filter model.RecordFilter, page, perPage int) ([]model.DataPenyakit, *response.Pagination, error) {
	page, perPage, offset := normalizePage(page, perPage)

	records, total, err := s.records.ListPaginated(ctx, filter, perPage, offset)
	if err != nil {
		return nil, nil, err
	}
	if records == nil {
		records = []model.DataPenyakit{}
	}
	return records, newPagination(page, perPage, total), nil
}

func (s *PenyakitService) Get(ctx context.Context, id string) (*model.DataPenyakit, error) {
	d, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

// fill resolves references and derives the computed fields of d from req.
func (s *PenyakitService) fill(ctx context.Context, d *model.DataPenyakit, req model.DataPenyakitRequest) error {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownUser
		}
		return err
	}
	jenis, err := s.jenis.GetByID(ctx, req.JenisPenyakitID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownJenis
		}
		return err
	}

	d.UserID = req.UserID
	d.JenisPenyakitID = jenis.ID
	d.NamaPenyakit = jenis.NamaPenyakit
	d.HasilPemeriksaan = req.HasilPemeriksaan
	d.Satuan = strings.TrimSpace(req.Satuan)
	d.Keterangan = req.Keterangan
	d.TanggalPemeriksaan = req.TanggalPemeriksaan
	d.Status = DetermineStatus(jenis.NamaPenyakit, req.HasilPemeriksaan)
	return nil
}

func (s *PenyakitService) Create(ctx context.Context, adminID string, req model.DataPenyakitRequest) (*model.DataPenyakit, error) {
	d := &model.DataPenyakit{AdminID: adminID}
	if err := s.fill(ctx, d, req); err != nil {
		return nil, err
	}
	if err := s.records.Create(ctx, d); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("id", d.ID).
		Str("user_id", d.UserID).
		Str("status", d.Status).
		Msg("Data penyakit created")
	return d, nil
}

func (s *PenyakitService) Update(ctx context.Context, adminID, id string, req model.DataPenyakitRequest) (*model.DataPenyakit, error) {
	d, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.fill(ctx, d, req); err != nil {
		return nil, err
	}
	d.AdminID = adminID
	if err := s.records.Update(ctx, d); err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func (s *PenyakitService) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	return nil
}
