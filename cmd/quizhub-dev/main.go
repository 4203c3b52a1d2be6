package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"quizhub/internal/devserver"
)

func main() {
	defaultAddr := os.Getenv("ADDR")
	if defaultAddr == "" {
		defaultAddr = ":8000"
	}
	defaultDB := os.Getenv("QUIZHUB_DEV_DB")
	if defaultDB == "" {
		defaultDB = "quizhub-dev.db"
	}
	defaultSecret := os.Getenv("QUIZHUB_DEV_SECRET")
	if defaultSecret == "" {
		defaultSecret = "quizhub-dev-secret"
	}

	addr := flag.String("addr", defaultAddr, "HTTP listen address")
	dbPath := flag.String("db", defaultDB, "sqlite database path")
	secret := flag.String("secret", defaultSecret, "token signing secret")
	jsonLogs := flag.Bool("json-logs", false, "log JSON instead of text")
	flag.Parse()

	log := setupLogger(*jsonLogs)

	store, err := devserver.NewStore(*dbPath)
	if err != nil {
		log.Error("opening store", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	auth := devserver.NewAuthenticator([]byte(*secret), store)
	api := devserver.NewAPI(store, auth, log)

	server := &http.Server{
		Addr:              *addr,
		Handler:           devserver.NewRouter(api, auth),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("quizhub-dev listening", "addr", *addr, "db", *dbPath)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(jsonLogs bool) *slog.Logger {
	if jsonLogs {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
