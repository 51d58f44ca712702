package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/database"
	"github.com/stemsi/rekamsehat-backend/internal/logger"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
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

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin User ===")

	// Nama
	fmt.Print("Enter Name: ")
	nama, _ := reader.ReadString('\n')
	nama = strings.TrimSpace(nama)
	if nama == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Lembaga
	fmt.Print("Enter Lembaga: ")
	lembaga, _ := reader.ReadString('\n')
	lembaga = strings.TrimSpace(lembaga)

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// Role
	fmt.Print("Enter Role [super_admin/admin] (default super_admin): ")
	roleStr, _ := reader.ReadString('\n')
	role := model.Role(strings.TrimSpace(roleStr))
	if role == "" {
		role = model.RoleSuperAdmin
	}
	if !role.IsStaff() {
		fmt.Println("Error: Role must be super_admin or admin")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	if _, err := userRepo.GetByEmail(ctx, email); err == nil {
		fmt.Printf("Error: %s is already registered\n", email)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Fatal().Err(err).Msg("Failed to check email")
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	now := time.Now()
	user := &model.User{
		UID:          uuid.New().String(),
		Nama:         nama,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Lembaga:      lembaga,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! %s '%s' (%s) created with UID: %s\n", user.Role, user.Nama, user.Email, user.UID)
}
