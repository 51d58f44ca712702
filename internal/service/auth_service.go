package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string     `json:"user_id"`
	Role        model.Role `json:"role"`
	Permissions []string   `json:"permissions,omitempty"`
}

// HasPermission reports whether the token carries the permission code.
func (c *Claims) HasPermission(code model.Permission) bool {
	for _, p := range c.Permissions {
		if p == string(code) {
			return true
		}
	}
	return false
}

// AuthService handles registration, login, JWT issuing and revocation.
type AuthService struct {
	cfg      *config.Config
	rdb      *redis.Client
	users    repository.UserRepository
	pending  repository.PendingUserRepository
	spesifik repository.DataSpesifikRepository
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService. rdb may be nil, in which case
// logout cannot revoke tokens before they expire.
func NewAuthService(
	cfg *config.Config,
	rdb *redis.Client,
	users repository.UserRepository,
	pending repository.PendingUserRepository,
	spesifik repository.DataSpesifikRepository,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		cfg:      cfg,
		rdb:      rdb,
		users:    users,
		pending:  pending,
		spesifik: spesifik,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailInUse reports whether email belongs to a user or a pending registration.
func (s *AuthService) emailInUse(ctx context.Context, email string) (bool, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("lookup user: %w", err)
	}

	if _, err := s.pending.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("lookup pending user: %w", err)
	}
	return false, nil
}

// Register stores a self-registration in pending_users for admin review.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.PendingUser, error) {
	email := normalizeEmail(req.Email)

	taken, err := s.emailInUse(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.RequestedRole
	if role == "" {
		role = model.RoleUser
	}

	p := &model.PendingUser{
		Nama:          strings.TrimSpace(req.Nama),
		Email:         email,
		PasswordHash:  hash,
		Lembaga:       strings.TrimSpace(req.Lembaga),
		Status:        model.PendingStatus,
		RequestedRole: role,
		CreatedAt:     time.Now(),
	}
	if err := s.pending.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create pending user: %w", err)
	}

	s.log.Info().Str("pending_id", p.ID).Str("email", p.Email).Msg("Registration received")
	return p, nil
}

// Login checks credentials and returns a signed token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return "", nil, fmt.Errorf("lookup user: %w", err)
		}
		if _, perr := s.pending.GetByEmail(ctx, email); perr == nil {
			return "", nil, ErrAccountPending
		}
		return "", nil, ErrInvalidCredentials
	}

	if err := s.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GenerateToken creates a JWT with the role's permissions embedded.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID:      user.UID,
		Role:        user.Role,
		Permissions: user.Role.Permissions(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// Revoke marks the token's jti as logged out until the token would expire.
func (s *AuthService) Revoke(ctx context.Context, claims *Claims) error {
	if s.rdb == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, config.CacheKey.RevokedTokenKey(claims.ID), "1", ttl).Err()
}

// RevokeUser invalidates every token issued to uid up to now. Used when a
// user's role changes or the account is removed, since permissions are
// embedded in the token.
func (s *AuthService) RevokeUser(ctx context.Context, uid string) error {
	if s.rdb == nil || uid == "" {
		return nil
	}
	return s.rdb.Set(ctx, config.CacheKey.UserRevokedKey(uid), time.Now().Unix(), s.cfg.JWTExpiry).Err()
}

// CheckSession returns ErrTokenRevoked when the token was logged out or was
// issued at or before the user's revocation cutoff.
func (s *AuthService) CheckSession(ctx context.Context, claims *Claims) error {
	if s.rdb == nil {
		return nil
	}

	pipe := s.rdb.Pipeline()
	var logout *redis.IntCmd
	if claims.ID != "" {
		logout = pipe.Exists(ctx, config.CacheKey.RevokedTokenKey(claims.ID))
	}
	cutoff := pipe.Get(ctx, config.CacheKey.UserRevokedKey(claims.UserID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("check revocation: %w", err)
	}

	if logout != nil && logout.Val() > 0 {
		return ErrTokenRevoked
	}

	since, err := cutoff.Int64()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read revocation cutoff: %w", err)
	}
	// iat has second precision, so a token minted in the cutoff second is
	// rejected as well.
	if claims.IssuedAt == nil || claims.IssuedAt.Unix() <= since {
		return ErrTokenRevoked
	}
	return nil
}

// Me loads the caller's user document and profile extension in parallel.
func (s *AuthService) Me(ctx context.Context, uid string) (*model.UserWithProfile, error) {
	return loadUserWithProfile(ctx, s.users, s.spesifik, uid)
}

func loadUserWithProfile(
	ctx context.Context,
	users repository.UserRepository,
	spesifik repository.DataSpesifikRepository,
	uid string,
) (*model.UserWithProfile, error) {
	out := &model.UserWithProfile{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := users.GetByID(gctx, uid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}
		out.User = u
		return nil
	})
	g.Go(func() error {
		d, err := spesifik.Get(gctx, uid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("load data spesifik: %w", err)
		}
		out.DataSpesifik = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
