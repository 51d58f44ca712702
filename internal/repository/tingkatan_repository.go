package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
)

// TingkatanRepository handles the tingkatan lookup list.
type TingkatanRepository interface {
	GetAll(ctx context.Context) ([]model.Tingkatan, error)
	GetByID(ctx context.Context, id string) (*model.Tingkatan, error)
	Create(ctx context.Context, t *model.Tingkatan) error
	Update(ctx context.Context, t *model.Tingkatan) error
	Delete(ctx context.Context, id string) error
}

type tingkatanRepository struct {
	client *firestore.Client
}

// NewTingkatanRepository creates a Firestore-backed TingkatanRepository.
func NewTingkatanRepository(client *firestore.Client) TingkatanRepository {
	return &tingkatanRepository{client: client}
}

func (r *tingkatanRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colTingkatan)
}

func (r *tingkatanRepository) GetAll(ctx context.Context) ([]model.Tingkatan, error) {
	docs, err := r.col().OrderBy("nama_tingkatan", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.Tingkatan, 0, len(docs))
	for _, d := range docs {
		var t model.Tingkatan
		if err := d.DataTo(&t); err != nil {
			return nil, fmt.Errorf("decode tingkatan %s: %w", d.Ref.ID, err)
		}
		t.ID = d.Ref.ID
		out = append(out, t)
	}
	return out, nil
}

func (r *tingkatanRepository) GetByID(ctx context.Context, id string) (*model.Tingkatan, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	t := &model.Tingkatan{}
	if err := snap.DataTo(t); err != nil {
		return nil, fmt.Errorf("decode tingkatan %s: %w", id, err)
	}
	t.ID = snap.Ref.ID
	return t, nil
}

func (r *tingkatanRepository) Create(ctx context.Context, t *model.Tingkatan) error {
	ref, _, err := r.col().Add(ctx, t)
	if err != nil {
		return err
	}
	t.ID = ref.ID
	return nil
}

func (r *tingkatanRepository) Update(ctx context.Context, t *model.Tingkatan) error {
	_, err := r.col().Doc(t.ID).Update(ctx, []firestore.Update{
		{Path: "nama_tingkatan", Value: t.NamaTingkatan},
	})
	return mapError(err)
}

func (r *tingkatanRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err)
}
