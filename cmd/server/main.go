package main

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/unlinked-app/backend/internal/metrics"
	"github.com/unlinked-app/backend/internal/router"
	"github.com/unlinked-app/backend/pkg/cloudinary"
	"github.com/unlinked-app/backend/pkg/config"
	"github.com/unlinked-app/backend/pkg/firebase"
	"github.com/unlinked-app/backend/pkg/mailer"
	"github.com/unlinked-app/backend/validators"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Provider login is optional; the endpoint reports unavailable when
	// credentials are absent.
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseAuth, err := firebase.New(context.Background(), cfg)
		if err != nil {
			logrus.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseAuth.Client
	}

	var mail mailer.Mailer
	if cfg.MailtrapToken != "" {
		mail = mailer.NewMailtrapClient(cfg.MailtrapToken, cfg.EmailFrom, cfg.EmailFromName)
	}

	var uploader cloudinary.Uploader
	if cfg.CloudinaryCloudName != "" {
		uploader, err = cloudinary.NewClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logrus.Fatalf("Failed to initialize Cloudinary: %v", err)
		}
	}

	m := metrics.InitMetrics()

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, m)
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseAuthClient, m, mail, uploader)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
