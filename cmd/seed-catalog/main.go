package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/database"
	"github.com/stemsi/rekamsehat-backend/internal/logger"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
	"github.com/stemsi/rekamsehat-backend/internal/service"
)

var tingkatanSeed = []string{"Tamtama", "Bintara", "Perwira Pertama", "Perwira Menengah"}

// Names carry the keywords DetermineStatus matches on.
var jenisSeed = []model.JenisPenyakitRequest{
	{
		NamaPenyakit: "Kolesterol Total",
		Deskripsi:    "Kadar kolesterol total dalam darah (mg/dL).",
		Tips:         "Kurangi makanan berlemak jenuh dan perbanyak serat.",
		Antisipasi:   []string{"Olahraga aerobik 150 menit per minggu", "Cek ulang setiap 6 bulan"},
	},
	{
		NamaPenyakit: "Trigliserida",
		Deskripsi:    "Kadar trigliserida puasa (mg/dL).",
		Tips:         "Batasi gula dan alkohol.",
		Antisipasi:   []string{"Kurangi karbohidrat olahan"},
	},
	{
		NamaPenyakit: "Gula Darah Puasa",
		Deskripsi:    "Kadar glukosa darah setelah puasa 8 jam (mg/dL).",
		Tips:         "Jaga pola makan teratur.",
		Antisipasi:   []string{"Pantau berat badan", "Periksa HbA1c bila di atas normal"},
	},
	{
		NamaPenyakit: "Asam Urat",
		Deskripsi:    "Kadar asam urat serum (mg/dL).",
		Tips:         "Kurangi jeroan dan makanan laut.",
		Antisipasi:   []string{"Minum air putih cukup"},
	},
	{
		NamaPenyakit: "Tekanan Darah",
		Deskripsi:    "Tekanan darah sistolik (mmHg).",
		Tips:         "Kurangi garam dan kelola stres.",
		Antisipasi:   []string{"Ukur tekanan darah rutin"},
	},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fs, err := database.NewFirestoreClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Firestore")
	}
	defer fs.Close()

	// Redis is optional here; with it the seeded catalogs are invalidated.
	var rdb *redis.Client
	if client, err := database.NewRedisClient(ctx, cfg, log); err == nil {
		rdb = client
		defer rdb.Close()
	}

	catalogService := service.NewCatalogService(
		cfg,
		rdb,
		repository.NewTingkatanRepository(fs),
		repository.NewJenisPenyakitRepository(fs),
		repository.NewDataSpesifikRepository(fs),
		repository.NewDataPenyakitRepository(fs),
		log,
	)

	fmt.Println("=== Seeding Catalogs ===")

	existingTingkatan, err := catalogService.ListTingkatan(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list tingkatan")
	}
	haveTingkatan := make(map[string]bool, len(existingTingkatan))
	for _, t := range existingTingkatan {
		haveTingkatan[strings.ToLower(t.NamaTingkatan)] = true
	}

	created := 0
	for _, name := range tingkatanSeed {
		if haveTingkatan[strings.ToLower(name)] {
			continue
		}
		if _, err := catalogService.CreateTingkatan(ctx, model.TingkatanRequest{NamaTingkatan: name}); err != nil {
			fmt.Printf("Error creating tingkatan %s: %v\n", name, err)
			continue
		}
		created++
	}
	fmt.Printf("Tingkatan: added %d/%d\n", created, len(tingkatanSeed))

	existingJenis, err := catalogService.ListJenis(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list jenis penyakit")
	}
	haveJenis := make(map[string]bool, len(existingJenis))
	for _, j := range existingJenis {
		haveJenis[strings.ToLower(j.NamaPenyakit)] = true
	}

	created = 0
	for _, req := range jenisSeed {
		if haveJenis[strings.ToLower(req.NamaPenyakit)] {
			continue
		}
		if _, err := catalogService.CreateJenis(ctx, req); err != nil {
			fmt.Printf("Error creating jenis penyakit %s: %v\n", req.NamaPenyakit, err)
			continue
		}
		created++
	}
	fmt.Printf("Jenis penyakit: added %d/%d\n", created, len(jenisSeed))

	fmt.Println("\nSeed completed!")
}
