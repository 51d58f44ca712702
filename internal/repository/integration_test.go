//go:build integration
// +build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stemsi/rekamsehat-backend/internal/model"
)

// These tests run against the Firestore emulator:
//
//	FIRESTORE_EMULATOR_HOST=localhost:8081 go test -tags integration ./internal/repository/...
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "demo-rekamsehat")
	if err != nil {
		t.Fatalf("firestore client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func TestPendingApproveMovesDocument(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	pending := NewPendingUserRepository(client)
	users := NewUserRepository(client)

	p := &model.PendingUser{
		Nama:         "Budi",
		Email:        uniqueEmail("budi"),
		PasswordHash: "hash",
		Status:       model.PendingStatus,
		CreatedAt:    time.Now(),
	}
	if err := pending.Create(ctx, p); err != nil {
		t.Fatalf("create pending: %v", err)
	}

	u := &model.User{UID: p.ID, Nama: p.Nama, Email: p.Email, PasswordHash: p.PasswordHash, Role: model.RoleUser, CreatedAt: time.Now()}
	if err := pending.Approve(ctx, p.ID, u); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := pending.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected pending doc gone, got %v", err)
	}
	got, err := users.GetByEmail(ctx, p.Email)
	if err != nil {
		t.Fatalf("user lookup: %v", err)
	}
	if got.Role != model.RoleUser {
		t.Fatalf("expected role user, got %s", got.Role)
	}

	if err := pending.Approve(ctx, p.ID, u); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second approve should be ErrNotFound, got %v", err)
	}
}

func TestJenisPenyakitDeleteRemovesObat(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	repo := NewJenisPenyakitRepository(client)

	j := &model.JenisPenyakit{NamaPenyakit: "Kolesterol", Antisipasi: []string{"olahraga"}}
	if err := repo.Create(ctx, j); err != nil {
		t.Fatalf("create jenis: %v", err)
	}
	for _, name := range []string{"Simvastatin", "Atorvastatin"} {
		if err := repo.CreateObat(ctx, j.ID, &model.Obat{NamaObat: name}); err != nil {
			t.Fatalf("create obat: %v", err)
		}
	}

	if err := repo.Delete(ctx, j.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	obat, err := repo.ListObat(ctx, j.ID)
	if err != nil {
		t.Fatalf("list obat: %v", err)
	}
	if len(obat) != 0 {
		t.Fatalf("expected obat subcollection emptied, got %d", len(obat))
	}
	if err := repo.Delete(ctx, j.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDataSpesifikLegacyFoto(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	repo := NewDataSpesifikRepository(client)

	uid := fmt.Sprintf("legacy-%d", time.Now().UnixNano())
	_, err := client.Collection(colDataSpesifik).Doc(uid).Set(ctx, map[string]interface{}{
		"user_id": uid,
		"nrp":     "123",
		"foto":    "https://res.cloudinary.com/demo/image/upload/v1/a.jpg",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	d, err := repo.Get(ctx, uid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d.Foto == nil || d.Foto.URL == "" || d.Foto.PublicID != "" {
		t.Fatalf("expected url-only foto, got %+v", d.Foto)
	}

	exists, err := repo.ExistsByTingkatan(ctx, "no-such-tingkatan")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("expected no reference")
	}
}

func TestDataPenyakitCountAndFilter(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	repo := NewDataPenyakitRepository(client)

	uid := fmt.Sprintf("peserta-%d", time.Now().UnixNano())
	for i := 0; i < 3; i++ {
		d := &model.DataPenyakit{UserID: uid, JenisPenyakitID: "j1", HasilPemeriksaan: float64(100 + i)}
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, total, err := repo.ListPaginated(ctx, model.RecordFilter{UserID: uid}, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("expected total 3 and page of 2, got %d/%d", total, len(page))
	}
}

func TestMigrateLegacyFoto(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()

	uid := fmt.Sprintf("migrate-%d", time.Now().UnixNano())
	ref := client.Collection(colDataSpesifik).Doc(uid)
	if _, err := ref.Set(ctx, map[string]interface{}{
		"user_id": uid,
		"foto":    "https://res.cloudinary.com/demo/image/upload/v1/b.jpg",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	found, err := MigrateLegacyFoto(ctx, client, false)
	if err != nil || found < 1 {
		t.Fatalf("dry run: found=%d err=%v", found, err)
	}
	snap, _ := ref.Get(ctx)
	if _, still := snap.Data()["foto"].(string); !still {
		t.Fatalf("dry run must not rewrite documents")
	}

	if _, err := MigrateLegacyFoto(ctx, client, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	snap, err = ref.Get(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	foto, ok := snap.Data()["foto"].(map[string]interface{})
	if !ok || foto["url"] != "https://res.cloudinary.com/demo/image/upload/v1/b.jpg" {
		t.Fatalf("expected map foto, got %#v", snap.Data()["foto"])
	}
}
