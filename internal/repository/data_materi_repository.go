package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"google.golang.org/api/iterator"
)

// DataMateriRepository handles fitness test records.
type DataMateriRepository interface {
	ListPaginated(ctx context.Context, pesertaID string, limit, offset int) ([]model.DataMateri, int, error)
	// ListAll returns every record ordered by test date, optionally for one peserta.
	ListAll(ctx context.Context, pesertaID string) ([]model.DataMateri, error)
	GetByID(ctx context.Context, id string) (*model.DataMateri, error)
	Create(ctx context.Context, d *model.DataMateri) error
	Update(ctx context.Context, d *model.DataMateri) error
	Delete(ctx context.Context, id string) error
}

type dataMateriRepository struct {
	client *firestore.Client
}

// NewDataMateriRepository creates a Firestore-backed DataMateriRepository.
func NewDataMateriRepository(client *firestore.Client) DataMateriRepository {
	return &dataMateriRepository{client: client}
}

func (r *dataMateriRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colDataMateri)
}

func (r *dataMateriRepository) query(pesertaID string) firestore.Query {
	q := r.col().Query
	if pesertaID != "" {
		q = q.Where("peserta_id", "==", pesertaID)
	}
	return q
}

func (r *dataMateriRepository) collect(iter *firestore.DocumentIterator) ([]model.DataMateri, error) {
	defer iter.Stop()

	records := []model.DataMateri{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var d model.DataMateri
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode data materi %s: %w", doc.Ref.ID, err)
		}
		d.ID = doc.Ref.ID
		records = append(records, d)
	}
	return records, nil
}

func (r *dataMateriRepository) ListPaginated(ctx context.Context, pesertaID string, limit, offset int) ([]model.DataMateri, int, error) {
	q := r.query(pesertaID)
	total, err := count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	records, err := r.collect(q.OrderBy("tanggal_pengujian", firestore.Desc).Offset(offset).Limit(limit).Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *dataMateriRepository) ListAll(ctx context.Context, pesertaID string) ([]model.DataMateri, error) {
	return r.collect(r.query(pesertaID).OrderBy("tanggal_pengujian", firestore.Asc).Documents(ctx))
}

func (r *dataMateriRepository) GetByID(ctx context.Context, id string) (*model.DataMateri, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	d := &model.DataMateri{}
	if err := snap.DataTo(d); err != nil {
		return nil, fmt.Errorf("decode data materi %s: %w", id, err)
	}
	d.ID = snap.Ref.ID
	return d, nil
}

func (r *dataMateriRepository) Create(ctx context.Context, d *model.DataMateri) error {
	d.CreatedAt = time.Now()
	ref, _, err := r.col().Add(ctx, d)
	if err != nil {
		return err
	}
	d.ID = ref.ID
	return nil
}

func (r *dataMateriRepository) Update(ctx context.Context, d *model.DataMateri) error {
	_, err := r.col().Doc(d.ID).Update(ctx, toUpdates(map[string]interface{}{
		"peserta_id":        d.PesertaID,
		"tinggi_badan":      d.TinggiBadan,
		"berat_badan":       d.BeratBadan,
		"index_masa_tubuh":  d.IndexMasaTubuh,
		"vo2max":            d.VO2Max,
		"lari_12_menit":     d.Lari12Menit,
		"push_up_mnt":       d.PushUpMnt,
		"sit_up_mnt":        d.SitUpMnt,
		"pull_up_mnt":       d.PullUpMnt,
		"shuttle_run":       d.ShuttleRun,
		"tanggal_pengujian": d.TanggalPengujian,
		"admin_id":          d.AdminID,
	}))
	return mapError(err)
}

func (r *dataMateriRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err)
}
