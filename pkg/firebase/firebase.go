package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
	"github.com/unlinked-app/backend/pkg/config"
	"google.golang.org/api/option"
)

// Auth bundles the Firebase app with the auth client that verifies provider
// ID tokens during provider login
type Auth struct {
	App    *firebase.App
	Client *auth.Client
}

// New builds the provider-login verifier from the configured service account
// credentials
func New(ctx context.Context, cfg *config.Config) (*Auth, error) {
	path := cfg.FirebaseCredentialsPath
	if path == "" {
		return nil, fmt.Errorf("firebase credentials path not configured")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("firebase credentials file not readable at %s: %w", path, err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating firebase auth client: %w", err)
	}

	logrus.Info("Firebase provider login initialized.")
	return &Auth{App: app, Client: client}, nil
}
