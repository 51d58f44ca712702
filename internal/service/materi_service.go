package service

import (
	"context"
	"errors"
	"io"
	"math"

	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/export"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
	"github.com/stemsi/rekamsehat-backend/internal/response"
)

// MateriService manages fitness test records.
type MateriService struct {
	records repository.DataMateriRepository
	users   repository.UserRepository
	log     zerolog.Logger
}

// NewMateriService creates a new MateriService.
func NewMateriService(records repository.DataMateriRepository, users repository.UserRepository, log zerolog.Logger) *MateriService {
	return &MateriService{
		records: records,
		users:   users,
		log:     log.With().Str("component", "materi_service").Logger(),
	}
}

// ComputeBMI returns berat / (tinggi in metres)², rounded to two decimals.
// It returns false when either measurement is missing.
func ComputeBMI(tinggiCM, beratKG float64) (float64, bool) {
	if tinggiCM <= 0 || beratKG <= 0 {
		return 0, false
	}
	m := tinggiCM / 100
	return math.Round(beratKG/(m*m)*100) / 100, true
}

func (s *MateriService) List(ctx context.Context, pesertaID string, page, perPage int) ([]model.DataMateri, *response.Pagination, error) {
	page, perPage, offset := normalizePage(page, perPage)

	records, total, err := s.records.ListPaginated(ctx, pesertaID, perPage, offset)
	if err != nil {
		return nil, nil, err
	}
	if records == nil {
		records = []model.DataMateri{}
	}
	return records, newPagination(page, perPage, total), nil
}

func (s *MateriService) Get(ctx context.Context, id string) (*model.DataMateri, error) {
	d, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func (s *MateriService) fill(ctx context.Context, d *model.DataMateri, req model.DataMateriRequest) error {
	if _, err := s.users.GetByID(ctx, req.PesertaID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownUser
		}
		return err
	}

	d.PesertaID = req.PesertaID
	d.TinggiBadan = req.TinggiBadan
	d.BeratBadan = req.BeratBadan
	d.IndexMasaTubuh = req.IndexMasaTubuh
	if bmi, ok := ComputeBMI(req.TinggiBadan, req.BeratBadan); ok {
		d.IndexMasaTubuh = bmi
	}
	d.VO2Max = req.VO2Max
	d.Lari12Menit = req.Lari12Menit
	d.PushUpMnt = req.PushUpMnt
	d.SitUpMnt = req.SitUpMnt
	d.PullUpMnt = req.PullUpMnt
	d.ShuttleRun = req.ShuttleRun
	d.TanggalPengujian = req.TanggalPengujian
	return nil
}

func (s *MateriService) Create(ctx context.Context, adminID string, req model.DataMateriRequest) (*model.DataMateri, error) {
	d := &model.DataMateri{AdminID: adminID}
	if err := s.fill(ctx, d, req); err != nil {
		return nil, err
	}
	if err := s.records.Create(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info().Str("id", d.ID).Str("peserta_id", d.PesertaID).Msg("Data materi created")
	return d, nil
}

func (s *MateriService) Update(ctx context.Context, adminID, id string, req model.DataMateriRequest) (*model.DataMateri, error) {
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

func (s *MateriService) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	return nil
}

// Export writes an xlsx workbook of the records (optionally for one peserta) to w.
// Peserta names are resolved once per distinct id.
func (s *MateriService) Export(ctx context.Context, pesertaID string, w io.Writer) (int, error) {
	records, err := s.records.ListAll(ctx, pesertaID)
	if err != nil {
		return 0, err
	}

	names := make(map[string]string)
	for _, r := range records {
		if _, seen := names[r.PesertaID]; seen {
			continue
		}
		names[r.PesertaID] = ""
		if u, err := s.users.GetByID(ctx, r.PesertaID); err == nil {
			names[r.PesertaID] = u.Nama
		} else if !errors.Is(err, repository.ErrNotFound) {
			return 0, err
		}
	}

	if err := export.WriteMateriWorkbook(w, records, names); err != nil {
		return 0, err
	}
	return len(records), nil
}
