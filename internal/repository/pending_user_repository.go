package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
)

// PendingUserRepository handles registrations awaiting approval.
type PendingUserRepository interface {
	GetByID(ctx context.Context, id string) (*model.PendingUser, error)
	GetByEmail(ctx context.Context, email string) (*model.PendingUser, error)
	ListAll(ctx context.Context) ([]model.PendingUser, error)
	Create(ctx context.Context, p *model.PendingUser) error
	Delete(ctx context.Context, id string) error
	// Approve atomically creates the user document and removes the pending one.
	Approve(ctx context.Context, pendingID string, user *model.User) error
}

type pendingUserRepository struct {
	client *firestore.Client
}

// NewPendingUserRepository creates a Firestore-backed PendingUserRepository.
func NewPendingUserRepository(client *firestore.Client) PendingUserRepository {
	return &pendingUserRepository{client: client}
}

func (r *pendingUserRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colPendingUsers)
}

func decodePending(snap *firestore.DocumentSnapshot) (*model.PendingUser, error) {
	p := &model.PendingUser{}
	if err := snap.DataTo(p); err != nil {
		return nil, fmt.Errorf("decode pending user %s: %w", snap.Ref.ID, err)
	}
	p.ID = snap.Ref.ID
	return p, nil
}

func (r *pendingUserRepository) GetByID(ctx context.Context, id string) (*model.PendingUser, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return decodePending(snap)
}

func (r *pendingUserRepository) GetByEmail(ctx context.Context, email string) (*model.PendingUser, error) {
	docs, err := r.col().Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return decodePending(docs[0])
}

func (r *pendingUserRepository) ListAll(ctx context.Context) ([]model.PendingUser, error) {
	docs, err := r.col().OrderBy("created_at", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.PendingUser, 0, len(docs))
	for _, d := range docs {
		p, err := decodePending(d)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *pendingUserRepository) Create(ctx context.Context, p *model.PendingUser) error {
	ref, _, err := r.col().Add(ctx, p)
	if err != nil {
		return err
	}
	p.ID = ref.ID
	return nil
}

func (r *pendingUserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err)
}

func (r *pendingUserRepository) Approve(ctx context.Context, pendingID string, user *model.User) error {
	pendingRef := r.col().Doc(pendingID)
	userRef := r.client.Collection(colUsers).Doc(user.UID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(pendingRef)
		if err != nil {
			return mapError(err)
		}
		if !snap.Exists() {
			return ErrNotFound
		}
		if err := tx.Create(userRef, user); err != nil {
			return err
		}
		return tx.Delete(pendingRef)
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return mapError(err)
	}
	return err
}
