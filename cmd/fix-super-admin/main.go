package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/database"
	"github.com/stemsi/rekamsehat-backend/internal/logger"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
)

func main() {
	var email string
	flag.StringVar(&email, "email", "", "Email of the account to promote")
	flag.Parse()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		fmt.Println("Usage: fix-super-admin -email <address>")
		return
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to Firestore ──────────────────────────────────────────
	fs, err := database.NewFirestoreClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Firestore")
	}
	defer fs.Close()

	userRepo := repository.NewUserRepository(fs)

	fmt.Println("=== Fix Super Admin ===")
	fmt.Printf("This command will give %s the super_admin role.\n", email)

	user, err := userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		fmt.Println("Error: No user with that email. Pending registrations must be approved first.")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to look up user")
	}

	if user.Role == model.RoleSuperAdmin {
		fmt.Println("Nothing to do: the account is already super_admin.")
		return
	}

	if err := userRepo.Update(ctx, user.UID, map[string]interface{}{"role": string(model.RoleSuperAdmin)}); err != nil {
		log.Fatal().Err(err).Msg("Failed to update role")
	}

	fmt.Printf("\nSuccess! %s (%s) is now super_admin (was %s).\n", user.Nama, user.Email, user.Role)
}
