package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository/repotest"
	"github.com/stemsi/rekamsehat-backend/internal/storage/storagetest"
)

type recordingRevoker struct {
	revoked []string
	err     error
}

func (r *recordingRevoker) RevokeUser(_ context.Context, uid string) error {
	if r.err != nil {
		return r.err
	}
	r.revoked = append(r.revoked, uid)
	return nil
}

type userFixture struct {
	users    *repotest.Users
	pending  *repotest.Pending
	spesifik *repotest.Spesifik
	provider *storagetest.Provider
	sessions *recordingRevoker
	svc      *UserService
}

func newUserFixture() *userFixture {
	users := repotest.NewUsers(
		&model.User{UID: "super", Email: "super@example.com", Role: model.RoleSuperAdmin, Lembaga: "Pusat"},
		&model.User{UID: "admin", Email: "admin@example.com", Role: model.RoleAdmin, Lembaga: "Pusat"},
		&model.User{UID: "user", Email: "user@example.com", Role: model.RoleUser, Lembaga: "Cabang"},
	)
	provider := storagetest.NewProvider()
	f := &userFixture{
		users:    users,
		pending:  repotest.NewPending(users),
		spesifik: repotest.NewSpesifik(),
		provider: provider,
		sessions: &recordingRevoker{},
	}
	media := NewMediaService(testConfig(), provider, testLog)
	f.svc = NewUserService(users, f.pending, f.spesifik, media, f.sessions, testLog)
	return f
}

func (f *userFixture) addPending(t *testing.T, email string, role model.Role) string {
	t.Helper()
	p := &model.PendingUser{Nama: "Calon", Email: email, PasswordHash: "hash", Status: model.PendingStatus, RequestedRole: role}
	if err := f.pending.Create(context.Background(), p); err != nil {
		t.Fatalf("seed pending: %v", err)
	}
	return p.ID
}

func TestAcceptPendingRoleRules(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	adminReq := f.addPending(t, "calon-admin@example.com", model.RoleAdmin)
	if _, err := f.svc.AcceptPending(ctx, model.RoleAdmin, adminReq, ""); !errors.Is(err, ErrForbiddenRole) {
		t.Fatalf("admin must not grant admin, got %v", err)
	}
	if _, err := f.svc.AcceptPending(ctx, model.RoleAdmin, adminReq, model.RoleSuperAdmin); !errors.Is(err, ErrForbiddenRole) {
		t.Fatalf("super_admin can never be granted on approval, got %v", err)
	}

	u, err := f.svc.AcceptPending(ctx, model.RoleSuperAdmin, adminReq, "")
	if err != nil {
		t.Fatalf("super admin accept: %v", err)
	}
	if u.Role != model.RoleAdmin || u.UID == "" || u.PasswordHash != "hash" {
		t.Fatalf("unexpected user %+v", u)
	}
	if _, err := f.pending.GetByID(ctx, adminReq); err == nil {
		t.Fatalf("pending doc should be removed")
	}

	userReq := f.addPending(t, "calon@example.com", "")
	u, err = f.svc.AcceptPending(ctx, model.RoleAdmin, userReq, "")
	if err != nil {
		t.Fatalf("admin accept user: %v", err)
	}
	if u.Role != model.RoleUser {
		t.Fatalf("expected default role user, got %s", u.Role)
	}

	if _, err := f.svc.AcceptPending(ctx, model.RoleAdmin, "missing", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectPending(t *testing.T) {
	f := newUserFixture()
	id := f.addPending(t, "tolak@example.com", "")
	if err := f.svc.RejectPending(context.Background(), id); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := f.svc.RejectPending(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second reject, got %v", err)
	}
}

func TestDeleteUserGuards(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	if err := f.svc.DeleteUser(ctx, "admin", model.RoleAdmin, "admin"); !errors.Is(err, ErrSelfAction) {
		t.Fatalf("expected ErrSelfAction, got %v", err)
	}
	if err := f.svc.DeleteUser(ctx, "admin", model.RoleAdmin, "super"); !errors.Is(err, ErrForbiddenRole) {
		t.Fatalf("admin must not delete super admin, got %v", err)
	}

	_ = f.spesifik.Upsert(ctx, &model.DataSpesifik{UserID: "user", Foto: &model.Foto{URL: "https://cdn.test/a.jpg", PublicID: "uploads/a"}})
	if err := f.svc.DeleteUser(ctx, "admin", model.RoleAdmin, "user"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := f.users.GetByID(ctx, "user"); err == nil {
		t.Fatalf("user should be gone")
	}
	if _, err := f.spesifik.Get(ctx, "user"); err == nil {
		t.Fatalf("data spesifik should be gone")
	}
	if !f.provider.DestroyedSet()["uploads/a"] {
		t.Fatalf("profile photo should be destroyed")
	}

	if err := f.svc.DeleteUser(ctx, "super", model.RoleSuperAdmin, "admin"); err != nil {
		t.Fatalf("super admin deletes admin: %v", err)
	}
}

func TestDeleteUserSurvivesProviderFailure(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.provider.FailOn["uploads/b"] = true
	_ = f.spesifik.Upsert(ctx, &model.DataSpesifik{UserID: "user", Foto: &model.Foto{PublicID: "uploads/b"}})

	if err := f.svc.DeleteUser(ctx, "admin", model.RoleAdmin, "user"); err != nil {
		t.Fatalf("provider failure must not block delete: %v", err)
	}
}

func TestUpdateRole(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	if _, err := f.svc.UpdateRole(ctx, "super", "super", model.RoleUser); !errors.Is(err, ErrSelfAction) {
		t.Fatalf("expected ErrSelfAction, got %v", err)
	}
	u, err := f.svc.UpdateRole(ctx, "super", "user", model.RoleAdmin)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if u.Role != model.RoleAdmin {
		t.Fatalf("expected admin, got %s", u.Role)
	}
	if _, err := f.svc.UpdateRole(ctx, "super", "ghost", model.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(f.sessions.revoked) != 1 || f.sessions.revoked[0] != "user" {
		t.Fatalf("expected sessions of user revoked once, got %v", f.sessions.revoked)
	}
}

func TestDeleteUserRevokesSessionsFirst(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.sessions.err = errors.New("redis down")

	if err := f.svc.DeleteUser(ctx, "admin", model.RoleAdmin, "user"); err == nil {
		t.Fatalf("expected revocation failure to abort delete")
	}
	if _, err := f.users.GetByID(ctx, "user"); err != nil {
		t.Fatalf("user must survive a failed revocation: %v", err)
	}

	f.sessions.err = nil
	if err := f.svc.DeleteUser(ctx, "admin", model.RoleAdmin, "user"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.sessions.revoked) != 1 || f.sessions.revoked[0] != "user" {
		t.Fatalf("expected sessions of user revoked, got %v", f.sessions.revoked)
	}
}

func TestListUsersPagination(t *testing.T) {
	f := newUserFixture()

	users, pg, err := f.svc.ListUsers(context.Background(), model.UserListFilter{Lembaga: "Pusat"}, 1, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || pg.TotalItems != 2 || pg.TotalPages != 2 {
		t.Fatalf("unexpected page %v %+v", users, pg)
	}

	_, pg, _ = f.svc.ListUsers(context.Background(), model.UserListFilter{}, 0, 1000)
	if pg.Page != 1 || pg.PerPage != maxPerPage {
		t.Fatalf("expected clamped paging, got %+v", pg)
	}
}

func TestNormalizePageBoundsOffset(t *testing.T) {
	page, perPage, offset := normalizePage(math.MaxInt, maxPerPage)
	if page != maxPage || perPage != maxPerPage {
		t.Fatalf("expected page clamped to %d, got %d/%d", maxPage, page, perPage)
	}
	if offset < 0 || offset > math.MaxInt32 {
		t.Fatalf("offset out of range: %d", offset)
	}

	f := newUserFixture()
	users, pg, err := f.svc.ListUsers(context.Background(), model.UserListFilter{}, math.MaxInt, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 0 || pg.Page != maxPage {
		t.Fatalf("expected empty clamped page, got %v %+v", users, pg)
	}
}

func TestGetUserIncludesProfile(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	_ = f.spesifik.Upsert(ctx, &model.DataSpesifik{UserID: "user", NRP: "123"})

	got, err := f.svc.GetUser(ctx, "user")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.User.UID != "user" || got.DataSpesifik == nil || got.DataSpesifik.NRP != "123" {
		t.Fatalf("unexpected result %+v", got)
	}

	got, err = f.svc.GetUser(ctx, "admin")
	if err != nil || got.DataSpesifik != nil {
		t.Fatalf("missing profile must be nil, got %+v err %v", got, err)
	}

	if _, err := f.svc.GetUser(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
