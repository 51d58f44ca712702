package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"google.golang.org/api/iterator"
)

// DataUmumRepository handles general information documents.
type DataUmumRepository interface {
	ListPaginated(ctx context.Context, limit, offset int) ([]model.DataUmum, int, error)
	GetByID(ctx context.Context, id string) (*model.DataUmum, error)
	Create(ctx context.Context, d *model.DataUmum) error
	Update(ctx context.Context, d *model.DataUmum) error
	// AppendFile atomically adds one file descriptor to the document.
	AppendFile(ctx context.Context, id string, f model.FileDescriptor) error
	Delete(ctx context.Context, id string) error
}

type dataUmumRepository struct {
	client *firestore.Client
}

// NewDataUmumRepository creates a Firestore-backed DataUmumRepository.
func NewDataUmumRepository(client *firestore.Client) DataUmumRepository {
	return &dataUmumRepository{client: client}
}

func (r *dataUmumRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colDataUmum)
}

func decodeUmum(snap *firestore.DocumentSnapshot) (*model.DataUmum, error) {
	d := &model.DataUmum{}
	if err := snap.DataTo(d); err != nil {
		return nil, fmt.Errorf("decode data umum %s: %w", snap.Ref.ID, err)
	}
	d.ID = snap.Ref.ID
	if d.Files == nil {
		d.Files = []model.FileDescriptor{}
	}
	return d, nil
}

func (r *dataUmumRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.DataUmum, int, error) {
	total, err := count(ctx, r.col().Query)
	if err != nil {
		return nil, 0, err
	}

	iter := r.col().OrderBy("created_at", firestore.Desc).Offset(offset).Limit(limit).Documents(ctx)
	defer iter.Stop()

	docs := []model.DataUmum{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		d, err := decodeUmum(snap)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, *d)
	}
	return docs, total, nil
}

func (r *dataUmumRepository) GetByID(ctx context.Context, id string) (*model.DataUmum, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeUmum(snap)
}

func (r *dataUmumRepository) Create(ctx context.Context, d *model.DataUmum) error {
	if d.Files == nil {
		d.Files = []model.FileDescriptor{}
	}
	d.CreatedAt = time.Now()
	ref, _, err := r.col().Add(ctx, d)
	if err != nil {
		return err
	}
	d.ID = ref.ID
	return nil
}

func (r *dataUmumRepository) Update(ctx context.Context, d *model.DataUmum) error {
	if d.Files == nil {
		d.Files = []model.FileDescriptor{}
	}
	_, err := r.col().Doc(d.ID).Update(ctx, toUpdates(map[string]interface{}{
		"judul":     d.Judul,
		"deskripsi": d.Deskripsi,
		"files":     d.Files,
	}))
	return mapError(err)
}

func (r *dataUmumRepository) AppendFile(ctx context.Context, id string, f model.FileDescriptor) error {
	_, err := r.col().Doc(id).Update(ctx, toUpdates(map[string]interface{}{
		"files": firestore.ArrayUnion(f),
	}))
	return mapError(err)
}

func (r *dataUmumRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err)
}
