package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"google.golang.org/api/option"
)

// NewFirestoreClient initializes the Firebase app and returns its Firestore client.
// When FIRESTORE_EMULATOR_HOST is set the client talks to the emulator and no
// credentials file is needed.
func NewFirestoreClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbCfg *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firestore client: %w", err)
	}

	log.Info().
		Str("project_id", cfg.FirebaseProjectID).
		Msg("Firestore connected")

	return client, nil
}
