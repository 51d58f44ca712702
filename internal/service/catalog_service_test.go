package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository/repotest"
)

type catalogFixture struct {
	tingkatan *repotest.Tingkatan
	jenis     *repotest.Jenis
	spesifik  *repotest.Spesifik
	penyakit  *repotest.Penyakit
	svc       *CatalogService
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		tingkatan: repotest.NewTingkatan(),
		jenis:     repotest.NewJenis(),
		spesifik:  repotest.NewSpesifik(),
		penyakit:  repotest.NewPenyakit(),
	}
	f.svc = NewCatalogService(testConfig(), nil, f.tingkatan, f.jenis, f.spesifik, f.penyakit, testLog)
	return f
}

func TestTingkatanLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()

	b, err := f.svc.CreateTingkatan(ctx, model.TingkatanRequest{NamaTingkatan: " Madya "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	a, _ := f.svc.CreateTingkatan(ctx, model.TingkatanRequest{NamaTingkatan: "Dasar"})

	list, err := f.svc.ListTingkatan(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != a.ID || list[1].NamaTingkatan != "Madya" {
		t.Fatalf("unexpected list %+v", list)
	}

	if _, err := f.svc.UpdateTingkatan(ctx, "missing", model.TingkatanRequest{NamaTingkatan: "X"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_ = f.spesifik.Upsert(ctx, &model.DataSpesifik{UserID: "u1", IDTingkatan: b.ID})
	if err := f.svc.DeleteTingkatan(ctx, b.ID); !errors.Is(err, ErrDependencyExists) {
		t.Fatalf("expected ErrDependencyExists, got %v", err)
	}
	if err := f.svc.DeleteTingkatan(ctx, a.ID); err != nil {
		t.Fatalf("delete unused: %v", err)
	}
}

func TestJenisPenyakitWithObat(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()

	j, err := f.svc.CreateJenis(ctx, model.JenisPenyakitRequest{
		NamaPenyakit: "Kolesterol",
		Antisipasi:   []string{"Kurangi gorengan", "  ", "Olahraga"},
	})
	if err != nil {
		t.Fatalf("create jenis: %v", err)
	}
	if len(j.Antisipasi) != 2 {
		t.Fatalf("blank antisipasi should be dropped, got %v", j.Antisipasi)
	}

	if _, err := f.svc.CreateObat(ctx, "missing", model.ObatRequest{NamaObat: "X"}); !errors.Is(err, ErrUnknownJenis) {
		t.Fatalf("expected ErrUnknownJenis, got %v", err)
	}
	o, err := f.svc.CreateObat(ctx, j.ID, model.ObatRequest{NamaObat: "Simvastatin", Dosis: "10mg"})
	if err != nil {
		t.Fatalf("create obat: %v", err)
	}
	if _, err := f.svc.UpdateObat(ctx, j.ID, o.ID, model.ObatRequest{NamaObat: "Simvastatin", Dosis: "20mg"}); err != nil {
		t.Fatalf("update obat: %v", err)
	}

	got, err := f.svc.GetJenis(ctx, j.ID)
	if err != nil {
		t.Fatalf("get jenis: %v", err)
	}
	if len(got.Obat) != 1 || got.Obat[0].Dosis != "20mg" {
		t.Fatalf("unexpected obat %+v", got.Obat)
	}

	_ = f.penyakit.Create(ctx, &model.DataPenyakit{JenisPenyakitID: j.ID})
	if err := f.svc.DeleteJenis(ctx, j.ID); !errors.Is(err, ErrDependencyExists) {
		t.Fatalf("expected ErrDependencyExists, got %v", err)
	}

	other, _ := f.svc.CreateJenis(ctx, model.JenisPenyakitRequest{NamaPenyakit: "Asam Urat"})
	_, _ = f.svc.CreateObat(ctx, other.ID, model.ObatRequest{NamaObat: "Allopurinol"})
	if err := f.svc.DeleteJenis(ctx, other.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if obat, _ := f.jenis.ListObat(ctx, other.ID); len(obat) != 0 {
		t.Fatalf("obat should be removed with the jenis")
	}
	if err := f.svc.DeleteJenis(ctx, other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
