package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
	"github.com/stemsi/rekamsehat-backend/internal/response"
)

// SessionRevoker cuts off the tokens already issued to a user.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, uid string) error
}

// UserService covers pending approvals and user administration.
type UserService struct {
	users    repository.UserRepository
	pending  repository.PendingUserRepository
	spesifik repository.DataSpesifikRepository
	media    *MediaService
	sessions SessionRevoker
	log      zerolog.Logger
}

// NewUserService creates a new UserService. sessions may be nil, in which
// case role changes only apply to tokens issued afterwards.
func NewUserService(
	users repository.UserRepository,
	pending repository.PendingUserRepository,
	spesifik repository.DataSpesifikRepository,
	media *MediaService,
	sessions SessionRevoker,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		pending:  pending,
		spesifik: spesifik,
		media:    media,
		sessions: sessions,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ListPending returns every registration awaiting approval.
func (s *UserService) ListPending(ctx context.Context) ([]model.PendingUser, error) {
	list, err := s.pending.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.PendingUser{}
	}
	return list, nil
}

// AcceptPending turns a pending registration into a user. role overrides the
// requested role when set. Only a super admin may grant the admin role.
func (s *UserService) AcceptPending(ctx context.Context, actorRole model.Role, pendingID string, role model.Role) (*model.User, error) {
	p, err := s.pending.GetByID(ctx, pendingID)
	if err != nil {
		return nil, notFound(err)
	}

	if role == "" {
		role = p.RequestedRole
	}
	if role == "" || !role.Valid() {
		role = model.RoleUser
	}
	if role == model.RoleSuperAdmin {
		return nil, ErrForbiddenRole
	}
	if role == model.RoleAdmin && actorRole != model.RoleSuperAdmin {
		return nil, ErrForbiddenRole
	}

	now := time.Now()
	user := &model.User{
		UID:          uuid.New().String(),
		Nama:         p.Nama,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Role:         role,
		Lembaga:      p.Lembaga,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.pending.Approve(ctx, pendingID, user); err != nil {
		return nil, notFound(err)
	}

	s.log.Info().Str("uid", user.UID).Str("role", string(role)).Msg("Pending user approved")
	return user, nil
}

// RejectPending discards a pending registration.
func (s *UserService) RejectPending(ctx context.Context, pendingID string) error {
	if err := s.pending.Delete(ctx, pendingID); err != nil {
		return notFound(err)
	}
	return nil
}

// ListUsers retrieves a filtered, paginated list of users.
func (s *UserService) ListUsers(ctx context.Context, filter model.UserListFilter, page, perPage int) ([]model.User, *response.Pagination, error) {
	page, perPage, offset := normalizePage(page, perPage)

	users, total, err := s.users.ListPaginated(ctx, filter, perPage, offset)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, newPagination(page, perPage, total), nil
}

// GetUser returns a user with their profile extension.
func (s *UserService) GetUser(ctx context.Context, uid string) (*model.UserWithProfile, error) {
	return loadUserWithProfile(ctx, s.users, s.spesifik, uid)
}

func (s *UserService) revokeSessions(ctx context.Context, uid string) error {
	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.RevokeUser(ctx, uid); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

// UpdateRole changes another user's role. Tokens the user already holds stop
// working, so the next login picks up the new permissions.
func (s *UserService) UpdateRole(ctx context.Context, actorID, uid string, role model.Role) (*model.User, error) {
	if actorID == uid {
		return nil, ErrSelfAction
	}
	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.users.Update(ctx, uid, map[string]interface{}{"role": string(role)}); err != nil {
		return nil, notFound(err)
	}
	user.Role = role

	// The update is idempotent, so a failed revocation can be retried.
	if err := s.revokeSessions(ctx, uid); err != nil {
		return nil, err
	}

	s.log.Info().Str("uid", uid).Str("role", string(role)).Str("by", actorID).Msg("Role changed")
	return user, nil
}

// DeleteUser revokes the user's tokens, then removes the user and their profile
// extension. The profile photo is removed from the provider afterwards on a
// best-effort basis.
func (s *UserService) DeleteUser(ctx context.Context, actorID string, actorRole model.Role, uid string) error {
	if actorID == uid {
		return ErrSelfAction
	}
	target, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return notFound(err)
	}
	if target.Role.IsStaff() && actorRole != model.RoleSuperAdmin {
		return ErrForbiddenRole
	}

	var foto *model.Foto
	if d, err := s.spesifik.Get(ctx, uid); err == nil {
		foto = d.Foto
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("load data spesifik: %w", err)
	}

	if err := s.revokeSessions(ctx, uid); err != nil {
		return err
	}
	if err := s.spesifik.Delete(ctx, uid); err != nil {
		return fmt.Errorf("delete data spesifik: %w", err)
	}
	if err := s.users.Delete(ctx, uid); err != nil {
		return notFound(err)
	}

	if foto != nil && foto.PublicID != "" {
		s.media.destroyQuietly(ctx, foto.PublicID, DefaultResourceType)
	}

	s.log.Info().Str("uid", uid).Str("by", actorID).Msg("User deleted")
	return nil
}
