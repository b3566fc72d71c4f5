package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/JantaElectricals/JE-Backend/internal/adminauth"
	"github.com/JantaElectricals/JE-Backend/internal/catalog"
	"github.com/JantaElectricals/JE-Backend/internal/config"
	"github.com/JantaElectricals/JE-Backend/internal/db"
	"github.com/JantaElectricals/JE-Backend/internal/logger"
	"github.com/JantaElectricals/JE-Backend/internal/middleware"
	"github.com/JantaElectricals/JE-Backend/internal/storage"
)

const adminLoginPath = "/admin/login"

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("Server is up!\n"))
}

func main() {
	_ = godotenv.Load(".env.local")

	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	primary, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	log.Info("connected to database")

	readDB := primary
	if cfg.ReadOnlyDatabaseURL != "" {
		readDB, err = db.Connect(cfg.ReadOnlyDatabaseURL)
		if err != nil {
			log.Error("read-only database connect failed", "err", err)
			os.Exit(1)
		}
		log.Info("connected to read-only database")
	}

	if err := adminauth.Init(primary, cfg.AdminPassword); err != nil {
		log.Error("admin auth setup failed", "err", err)
		os.Exit(1)
	}
	if err := catalog.Init(primary); err != nil {
		log.Error("catalog setup failed", "err", err)
		os.Exit(1)
	}

	store, err := storage.NewS3Store(context.Background(), cfg.Storage)
	if err != nil {
		log.Error("object storage setup failed", "err", err)
		os.Exit(1)
	}

	authHandler := &adminauth.Handler{
		DB:     primary,
		Log:    log,
		Secure: cfg.IsProduction(),
	}
	catalogHandler := &catalog.Handler{
		DB:             primary,
		ReadDB:         readDB,
		Log:            log,
		WhatsAppNumber: cfg.WhatsAppNumber,
	}
	storageHandler := &storage.Handler{
		Store: store,
		Log:   log,
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Get("/", RootHandler)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminGate(adminLoginPath))
		authHandler.SetupRoutes(r)
		catalogHandler.SetupAdminRoutes(r)
		storageHandler.SetupAdminRoutes(r)
	})

	r.Route("/public", func(r chi.Router) {
		catalogHandler.SetupPublicRoutes(r)
		storageHandler.SetupPublicRoutes(r)
	})

	log.Info("server listening", "port", cfg.Port)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
