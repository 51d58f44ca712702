package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository/repotest"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCatalogReadThroughAndInvalidation(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)

	cfg := testConfig()
	cfg.CatalogCacheTTL = time.Minute
	tingkatan := repotest.NewTingkatan(model.Tingkatan{ID: "t1", NamaTingkatan: "Dasar"})
	svc := NewCatalogService(cfg, rdb, tingkatan, repotest.NewJenis(), repotest.NewSpesifik(), repotest.NewPenyakit(), testLog)

	if list, err := svc.ListTingkatan(ctx); err != nil || len(list) != 1 {
		t.Fatalf("first list: %v %v", list, err)
	}
	if _, err := svc.ListTingkatan(ctx); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if n := tingkatan.Reads(); n != 1 {
		t.Fatalf("second list should be served from cache, store read %d times", n)
	}
	if ttl := mr.TTL("catalog:tingkatan"); ttl != time.Minute {
		t.Fatalf("expected cache ttl of a minute, got %v", ttl)
	}

	if _, err := svc.CreateTingkatan(ctx, model.TingkatanRequest{NamaTingkatan: "Madya"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if mr.Exists("catalog:tingkatan") {
		t.Fatalf("create should drop the cached list")
	}

	list, err := svc.ListTingkatan(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(list) != 2 || tingkatan.Reads() != 2 {
		t.Fatalf("expected fresh list of 2, got %+v after %d reads", list, tingkatan.Reads())
	}
}

func TestCatalogSurvivesCacheOutage(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)

	tingkatan := repotest.NewTingkatan(model.Tingkatan{ID: "t1", NamaTingkatan: "Dasar"})
	svc := NewCatalogService(testConfig(), rdb, tingkatan, repotest.NewJenis(), repotest.NewSpesifik(), repotest.NewPenyakit(), testLog)

	mr.SetError("LOADING")
	list, err := svc.ListTingkatan(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("cache failure must fall back to the store, got %v %v", list, err)
	}
}

func TestCatalogDiscardsUnreadableEntry(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)

	tingkatan := repotest.NewTingkatan(model.Tingkatan{ID: "t1", NamaTingkatan: "Dasar"})
	svc := NewCatalogService(testConfig(), rdb, tingkatan, repotest.NewJenis(), repotest.NewSpesifik(), repotest.NewPenyakit(), testLog)

	_ = mr.Set("catalog:tingkatan", "{not json")
	list, err := svc.ListTingkatan(ctx)
	if err != nil || len(list) != 1 || list[0].ID != "t1" {
		t.Fatalf("expected store result, got %v %v", list, err)
	}
}

func TestCheckSessionAgainstUserCutoff(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	auth := NewAuthService(testConfig(), rdb, repotest.NewUsers(), nil, nil, testLog)

	now := time.Now()
	before := &Claims{UserID: "u1"}
	before.IssuedAt = jwt.NewNumericDate(now)
	after := &Claims{UserID: "u1"}
	after.IssuedAt = jwt.NewNumericDate(now.Add(2 * time.Second))

	if err := auth.CheckSession(ctx, before); err != nil {
		t.Fatalf("no cutoff yet: %v", err)
	}
	if err := auth.RevokeUser(ctx, "u1"); err != nil {
		t.Fatalf("revoke user: %v", err)
	}
	if !mr.Exists("user_revoked:u1") {
		t.Fatalf("expected cutoff key")
	}

	if err := auth.CheckSession(ctx, before); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("token from the cutoff second must be revoked, got %v", err)
	}
	if err := auth.CheckSession(ctx, after); err != nil {
		t.Fatalf("token issued after the cutoff must pass, got %v", err)
	}
	if err := auth.CheckSession(ctx, &Claims{UserID: "u1"}); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("token without iat must be revoked once a cutoff exists, got %v", err)
	}
	if err := auth.CheckSession(ctx, &Claims{UserID: "u2"}); err != nil {
		t.Fatalf("other users are unaffected, got %v", err)
	}
}

func TestLogoutRevokesOnlyThatToken(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	auth := NewAuthService(testConfig(), rdb, repotest.NewUsers(), nil, nil, testLog)

	user := &model.User{UID: "u1", Role: model.RoleUser}
	first, _ := auth.GenerateToken(user)
	second, _ := auth.GenerateToken(user)
	c1, err := auth.ValidateToken(first)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	c2, _ := auth.ValidateToken(second)

	if err := auth.Revoke(ctx, c1); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := auth.CheckSession(ctx, c1); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected revoked, got %v", err)
	}
	if err := auth.CheckSession(ctx, c2); err != nil {
		t.Fatalf("second session must survive, got %v", err)
	}
}
