// Edge-function-style variant of the API: the same router as cmd/server,
// mounted behind a stock net/http server with lazily initialized
// dependencies. Suited for serverless platforms that keep the process warm
// between invocations; the first request pays the cold-start cost.
package main

import (
	"context"
	"net/http"
	"sync"

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

var (
	initOnce sync.Once
	app      *echo.Echo
	initErr  error
)

// handler initializes the application on first use and dispatches every
// request to the shared Echo router
func handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(initApp)
	if initErr != nil {
		logrus.Errorf("Cold start failed: %v", initErr)
		http.Error(w, `{"message":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	app.ServeHTTP(w, r)
}

func initApp() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		initErr = err
		return
	}

	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseAuth, err := firebase.New(context.Background(), cfg)
		if err != nil {
			initErr = err
			return
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
			initErr = err
			return
		}
	}

	m := metrics.InitMetrics()

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, m)
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseAuthClient, m, mail, uploader)

	app = e
}

func main() {
	cfg := config.Load()
	logrus.Infof("Function handler listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, http.HandlerFunc(handler)); err != nil {
		logrus.Fatalf("Server failed: %v", err)
	}
}
