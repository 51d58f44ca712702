package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
)

// DataSpesifikRepository handles the per-user profile extension documents.
type DataSpesifikRepository interface {
	Get(ctx context.Context, uid string) (*model.DataSpesifik, error)
	Upsert(ctx context.Context, d *model.DataSpesifik) error
	Delete(ctx context.Context, uid string) error
	ExistsByTingkatan(ctx context.Context, tingkatanID string) (bool, error)
}

type dataSpesifikRepository struct {
	client *firestore.Client
}

// NewDataSpesifikRepository creates a Firestore-backed DataSpesifikRepository.
func NewDataSpesifikRepository(client *firestore.Client) DataSpesifikRepository {
	return &dataSpesifikRepository{client: client}
}

func (r *dataSpesifikRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colDataSpesifik)
}

func (r *dataSpesifikRepository) Get(ctx context.Context, uid string) (*model.DataSpesifik, error) {
	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	d := &model.DataSpesifik{}
	if err := snap.DataTo(d); err != nil {
		return nil, fmt.Errorf("decode data spesifik %s: %w", uid, err)
	}
	if d.UserID == "" {
		d.UserID = snap.Ref.ID
	}
	d.NormalizeFoto()
	return d, nil
}

func (r *dataSpesifikRepository) Upsert(ctx context.Context, d *model.DataSpesifik) error {
	d.PrepareForWrite()
	_, err := r.col().Doc(d.UserID).Set(ctx, d)
	return err
}

// Delete removes the document. A missing document is not an error.
func (r *dataSpesifikRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.col().Doc(uid).Delete(ctx)
	return err
}

func (r *dataSpesifikRepository) ExistsByTingkatan(ctx context.Context, tingkatanID string) (bool, error) {
	return exists(ctx, r.col().Where("id_tingkatan", "==", tingkatanID))
}
