package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
)

// JenisPenyakitRepository handles the disease-type catalog and its obat subcollection.
type JenisPenyakitRepository interface {
	GetAll(ctx context.Context) ([]model.JenisPenyakit, error)
	GetByID(ctx context.Context, id string) (*model.JenisPenyakit, error)
	Create(ctx context.Context, j *model.JenisPenyakit) error
	Update(ctx context.Context, j *model.JenisPenyakit) error
	// Delete removes the document together with its obat subcollection.
	Delete(ctx context.Context, id string) error

	ListObat(ctx context.Context, jenisID string) ([]model.Obat, error)
	CreateObat(ctx context.Context, jenisID string, o *model.Obat) error
	UpdateObat(ctx context.Context, jenisID string, o *model.Obat) error
	DeleteObat(ctx context.Context, jenisID, obatID string) error
}

type jenisPenyakitRepository struct {
	client *firestore.Client
}

// NewJenisPenyakitRepository creates a Firestore-backed JenisPenyakitRepository.
func NewJenisPenyakitRepository(client *firestore.Client) JenisPenyakitRepository {
	return &jenisPenyakitRepository{client: client}
}

func (r *jenisPenyakitRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colJenisPenyakit)
}

func (r *jenisPenyakitRepository) obatCol(jenisID string) *firestore.CollectionRef {
	return r.col().Doc(jenisID).Collection(colObat)
}

func decodeJenis(snap *firestore.DocumentSnapshot) (*model.JenisPenyakit, error) {
	j := &model.JenisPenyakit{}
	if err := snap.DataTo(j); err != nil {
		return nil, fmt.Errorf("decode jenis penyakit %s: %w", snap.Ref.ID, err)
	}
	j.ID = snap.Ref.ID
	if j.Antisipasi == nil {
		j.Antisipasi = []string{}
	}
	return j, nil
}

func (r *jenisPenyakitRepository) GetAll(ctx context.Context) ([]model.JenisPenyakit, error) {
	docs, err := r.col().OrderBy("nama_penyakit", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.JenisPenyakit, 0, len(docs))
	for _, d := range docs {
		j, err := decodeJenis(d)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, nil
}

func (r *jenisPenyakitRepository) GetByID(ctx context.Context, id string) (*model.JenisPenyakit, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeJenis(snap)
}

func (r *jenisPenyakitRepository) Create(ctx context.Context, j *model.JenisPenyakit) error {
	j.CreatedAt = time.Now()
	ref, _, err := r.col().Add(ctx, j)
	if err != nil {
		return err
	}
	j.ID = ref.ID
	return nil
}

func (r *jenisPenyakitRepository) Update(ctx context.Context, j *model.JenisPenyakit) error {
	_, err := r.col().Doc(j.ID).Update(ctx, toUpdates(map[string]interface{}{
		"nama_penyakit": j.NamaPenyakit,
		"deskripsi":     j.Deskripsi,
		"tips":          j.Tips,
		"antisipasi":    j.Antisipasi,
	}))
	return mapError(err)
}

func (r *jenisPenyakitRepository) Delete(ctx context.Context, id string) error {
	if err := deleteCollection(ctx, r.client, r.obatCol(id)); err != nil {
		return err
	}
	_, err := r.col().Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err)
}

func (r *jenisPenyakitRepository) ListObat(ctx context.Context, jenisID string) ([]model.Obat, error) {
	docs, err := r.obatCol(jenisID).OrderBy("nama_obat", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.Obat, 0, len(docs))
	for _, d := range docs {
		var o model.Obat
		if err := d.DataTo(&o); err != nil {
			return nil, fmt.Errorf("decode obat %s: %w", d.Ref.ID, err)
		}
		o.ID = d.Ref.ID
		out = append(out, o)
	}
	return out, nil
}

func (r *jenisPenyakitRepository) CreateObat(ctx context.Context, jenisID string, o *model.Obat) error {
	ref, _, err := r.obatCol(jenisID).Add(ctx, o)
	if err != nil {
		return err
	}
	o.ID = ref.ID
	return nil
}

func (r *jenisPenyakitRepository) UpdateObat(ctx context.Context, jenisID string, o *model.Obat) error {
	_, err := r.obatCol(jenisID).Doc(o.ID).Update(ctx, []firestore.Update{
		{Path: "nama_obat", Value: o.NamaObat},
		{Path: "dosis", Value: o.Dosis},
		{Path: "keterangan", Value: o.Keterangan},
	})
	return mapError(err)
}

func (r *jenisPenyakitRepository) DeleteObat(ctx context.Context, jenisID, obatID string) error {
	_, err := r.obatCol(jenisID).Doc(obatID).Delete(ctx, firestore.Exists)
	return mapError(err)
}
