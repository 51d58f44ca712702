package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"google.golang.org/api/iterator"
)

// UserRepository handles users collection access.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListPaginated(ctx context.Context, filter model.UserListFilter, limit, offset int) ([]model.User, int, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, uid string, fields map[string]interface{}) error
	Delete(ctx context.Context, uid string) error
}

type userRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a Firestore-backed UserRepository.
func NewUserRepository(client *firestore.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colUsers)
}

func (r *userRepository) GetByID(ctx context.Context, uid string) (*model.User, error) {
	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	u := &model.User{}
	if err := snap.DataTo(u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", uid, err)
	}
	u.UID = snap.Ref.ID
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	docs, err := r.col().Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	u := &model.User{}
	if err := docs[0].DataTo(u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	u.UID = docs[0].Ref.ID
	return u, nil
}

// ListPaginated returns one page of users, newest first, and the total match count.
func (r *userRepository) ListPaginated(ctx context.Context, filter model.UserListFilter, limit, offset int) ([]model.User, int, error) {
	q := r.col().Query
	if filter.Role != "" {
		q = q.Where("role", "==", string(filter.Role))
	}
	if filter.Lembaga != "" {
		q = q.Where("lembaga", "==", filter.Lembaga)
	}

	total, err := count(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	iter := q.OrderBy("created_at", firestore.Desc).Offset(offset).Limit(limit).Documents(ctx)
	defer iter.Stop()

	users := []model.User{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		var u model.User
		if err := doc.DataTo(&u); err != nil {
			return nil, 0, fmt.Errorf("decode user %s: %w", doc.Ref.ID, err)
		}
		u.UID = doc.Ref.ID
		users = append(users, u)
	}
	return users, total, nil
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	_, err := r.col().Doc(u.UID).Create(ctx, u)
	return mapError(err)
}

func (r *userRepository) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	_, err := r.col().Doc(uid).Update(ctx, toUpdates(fields))
	return mapError(err)
}

func (r *userRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.col().Doc(uid).Delete(ctx, firestore.Exists)
	return mapError(err)
}
