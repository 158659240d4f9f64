package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/scward0/SaveHaven/internal/auth"
	"github.com/scward0/SaveHaven/internal/config"
	"github.com/scward0/SaveHaven/internal/server"
	"github.com/scward0/SaveHaven/internal/service"
	"github.com/scward0/SaveHaven/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var storeImpl store.Store
	var firebaseAuth *auth.FirebaseAuth

	if cfg.UseMemoryStore {
		slog.Info("using in-memory store for local development")
		storeImpl = store.NewMemoryStore()
		// Memory store always pairs with mock identity so local dev needs
		// no Firebase setup.
		firebaseAuth = nil
	} else {
		firestoreClient, err := firestore.NewClient(ctx, cfg.GoogleCloudProject)
		if err != nil {
			slog.Error("failed to create Firestore client", "error", err)
			os.Exit(1)
		}
		defer firestoreClient.Close()

		if cfg.SkipAuth {
			slog.Warn("SKIP_AUTH enabled - mock identity with Firestore (seeding/testing only)")
		} else {
			firebaseAuth, err = auth.NewFirebaseAuth(ctx)
			if err != nil {
				slog.Error("failed to initialize Firebase Auth", "error", err)
				os.Exit(1)
			}
		}

		storeImpl = store.NewFirestoreStore(firestoreClient)
	}

	transactions := service.NewTransactionService(storeImpl)
	preferences := service.NewPreferenceService(storeImpl)
	users := service.NewUserService(storeImpl)

	api := server.New(transactions, preferences, users)

	var authed http.Handler = api.Routes()
	if firebaseAuth != nil {
		authed = auth.Middleware(firebaseAuth)(authed)
	} else {
		authed = auth.LocalDevMiddleware()(authed)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", authed)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
			"X-Debug-Impersonate-User",
		},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(c.Handler(mux), &http2.Server{}),
	}

	slog.Info("starting server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
