package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/labinterpreter/internal/application"
	appai "github.com/bryanwahyu/labinterpreter/internal/application/ai"
	appreports "github.com/bryanwahyu/labinterpreter/internal/application/reports"
	"github.com/bryanwahyu/labinterpreter/internal/config"
	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/provider"
	"github.com/bryanwahyu/labinterpreter/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/labinterpreter/internal/infra/db/mysql"
	pgp "github.com/bryanwahyu/labinterpreter/internal/infra/db/postgres"
	"github.com/bryanwahyu/labinterpreter/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/labinterpreter/internal/infra/storage"
	"github.com/bryanwahyu/labinterpreter/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.AI.APIKey == "" {
		log.Printf("warning: %s is not set; analyses will fail with auth_failure", config.KeyEnv(cfg.AI.Vendor))
	}

	ctx := context.Background()
	checks := map[string]middleware.HealthChecker{}

	// init repo
	repo, db, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("%s connect error: %v", cfg.Database.Driver, err)
	}
	if db != nil {
		defer db.Close()
		checks["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	// init archive
	var artifacts domain.ArtifactStore
	switch cfg.Storage.Driver {
	case "minio":
		store, err := minioStore.New(ctx, minioStore.Options{
			Endpoint:   cfg.Minio.Endpoint,
			Region:     cfg.Minio.Region,
			BucketName: cfg.Minio.BucketName,
			AccessKey:  cfg.Minio.AccessKey,
			SecretKey:  cfg.Minio.SecretKey,
			UseSSL:     cfg.Minio.UseSSL,
			PresignTTL: cfg.PresignTTL(),
		})
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		artifacts = store
		checks["storage"] = store
	case "memory":
		artifacts = minioStore.NewMemoryStore()
	}
	if artifacts == nil {
		repo = nil
	}

	// init ai client
	aiCfg := cfg.AIConfig()
	if aiCfg.Model == "" {
		aiCfg.Model = provider.DefaultModel(cfg.AI.Vendor)
	}
	client, err := provider.New(cfg.AI.Vendor, aiCfg)
	if err != nil {
		log.Fatalf("ai init error: %v", err)
	}

	// init service
	svc := &appreports.Service{
		AI:        appai.NewService(client, cfg.AI.Vendor, aiCfg.Model, cfg.AITimeout()),
		Repo:      repo,
		Artifacts: artifacts,
		Clock:     application.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(svc, httpserver.Options{
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimit:      cfg.Server.RateLimit.Requests,
		RateWindow:     cfg.RateWindow(),
		Checks:         checks,
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AITimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s vendor=%s model=%s storage=%s database=%s",
			addr, cfg.AI.Vendor, aiCfg.Model, cfg.Storage.Driver, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// openRepository picks the report metadata store. db is nil for the memory
// driver.
func openRepository(ctx context.Context, cfg *config.Config) (domain.Repository, *sql.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := mysqlp.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return mysqlp.NewReportRepository(db), db, nil
	case "postgres":
		db, err := pgp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := pgp.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return pgp.NewReportRepository(db), db, nil
	default:
		return memory.NewReportRepository(), nil, nil
	}
}
