package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"google.golang.org/api/iterator"
)

// DataPenyakitRepository handles disease/lab result records.
type DataPenyakitRepository interface {
	ListPaginated(ctx context.Context, filter model.RecordFilter, limit, offset int) ([]model.DataPenyakit, int, error)
	GetByID(ctx context.Context, id string) (*model.DataPenyakit, error)
	Create(ctx context.Context, d *model.DataPenyakit) error
	Update(ctx context.Context, d *model.DataPenyakit) error
	Delete(ctx context.Context, id string) error
	ExistsByJenis(ctx context.Context, jenisID string) (bool, error)
}

type dataPenyakitRepository struct {
	client *firestore.Client
}

// NewDataPenyakitRepository creates a Firestore-backed DataPenyakitRepository.
func NewDataPenyakitRepository(client *firestore.Client) DataPenyakitRepository {
	return &dataPenyakitRepository{client: client}
}

func (r *dataPenyakitRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colDataPenyakit)
}

func (r *dataPenyakitRepository) ListPaginated(ctx context.Context, filter model.RecordFilter, limit, offset int) ([]model.DataPenyakit, int, error) {
	q := r.col().Query
	if filter.UserID != "" {
		q = q.Where("user_id", "==", filter.UserID)
	}
	if filter.JenisPenyakitID != "" {
		q = q.Where("jenis_penyakit_id", "==", filter.JenisPenyakitID)
	}

	total, err := count(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	iter := q.OrderBy("created_at", firestore.Desc).Offset(offset).Limit(limit).Documents(ctx)
	defer iter.Stop()

	records := []model.DataPenyakit{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		var d model.DataPenyakit
		if err := doc.DataTo(&d); err != nil {
			return nil, 0, fmt.Errorf("decode data penyakit %s: %w", doc.Ref.ID, err)
		}
		d.ID = doc.Ref.ID
		records = append(records, d)
	}
	return records, total, nil
}

func (r *dataPenyakitRepository) GetByID(ctx context.Context, id string) (*model.DataPenyakit, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	d := &model.DataPenyakit{}
	if err := snap.DataTo(d); err != nil {
		return nil, fmt.Errorf("decode data penyakit %s: %w", id, err)
	}
	d.ID = snap.Ref.ID
	return d, nil
}

func (r *dataPenyakitRepository) Create(ctx context.Context, d *model.DataPenyakit) error {
	d.CreatedAt = time.Now()
	ref, _, err := r.col().Add(ctx, d)
	if err != nil {
		return err
	}
	d.ID = ref.ID
	return nil
}

func (r *dataPenyakitRepository) Update(ctx context.Context, d *model.DataPenyakit) error {
	_, err := r.col().Doc(d.ID).Update(ctx, toUpdates(map[string]interface{}{
		"user_id":             d.UserID,
		"jenis_penyakit_id":   d.JenisPenyakitID,
		"nama_penyakit":       d.NamaPenyakit,
		"hasil_pemeriksaan":   d.HasilPemeriksaan,
		"satuan":              d.Satuan,
		"status":              d.Status,
		"keterangan":          d.Keterangan,
		"tanggal_pemeriksaan": d.TanggalPemeriksaan,
		"admin_id":            d.AdminID,
	}))
	return mapError(err)
}

func (r *dataPenyakitRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err)
}

func (r *dataPenyakitRepository) ExistsByJenis(ctx context.Context, jenisID string) (bool, error) {
	return exists(ctx, r.col().Where("jenis_penyakit_id", "==", jenisID))
}
