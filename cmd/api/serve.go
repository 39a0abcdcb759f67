package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/credcheck/internal/application"
	appanalysis "github.com/bryanwahyu/credcheck/internal/application/analysis"
	appextract "github.com/bryanwahyu/credcheck/internal/application/extract"
	"github.com/bryanwahyu/credcheck/internal/config"
	"github.com/bryanwahyu/credcheck/internal/domain/history"
	mysqlp "github.com/bryanwahyu/credcheck/internal/infra/db/mysql"
	"github.com/bryanwahyu/credcheck/internal/infra/db/postgres"
	"github.com/bryanwahyu/credcheck/internal/infra/extract"
	"github.com/bryanwahyu/credcheck/internal/infra/history/memory"
	"github.com/bryanwahyu/credcheck/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/credcheck/internal/infra/storage"
	"github.com/bryanwahyu/credcheck/internal/middleware"
)

func newServeCommand() *cobra.Command {
	var (
		configPath string
		host       string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = os.Getenv("CONFIG_PATH")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if errs := cfg.Validate(); len(errs) > 0 {
				return errors.Join(errs...)
			}

			logger, err := newLogger(cfg.Log.Level)
			if err != nil {
				return err
			}
			defer logger.Sync()
			undo := zap.ReplaceGlobals(logger)
			defer undo()

			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default $CONFIG_PATH)")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "bind host")
	cmd.Flags().IntVarP(&port, "port", "p", 8000, "bind port")
	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return zcfg.Build()
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := zap.S()

	checkers := map[string]middleware.HealthChecker{}
	repo, db, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}
	checkers["history"] = &middleware.HistoryHealthChecker{Repo: repo}

	svc := &appanalysis.Service{
		Records:     repo,
		Clock:       application.SystemClock{},
		RecentLimit: cfg.History.RecentLimit,
	}

	if cfg.Archive.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.Prefix,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			return err
		}
		svc.Archive = store
		log.Infow("result archive enabled", "endpoint", cfg.Archive.Endpoint, "bucket", cfg.Archive.BucketName)
	}

	extractSvc := appextract.NewService(extract.NewPlaceholder())

	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(svc, extractSvc, httpserver.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateCapacity:   cfg.RateLimit.Capacity,
		RateRefill:     cfg.RateLimit.RefillRate,
		HealthCheckers: checkers,
		HistoryBackend: cfg.History.Backend,
	}))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", srv.Addr, "history", cfg.History.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	log.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx2)
}

func openHistory(ctx context.Context, cfg *config.Config) (history.Repository, *sql.DB, error) {
	switch cfg.History.Backend {
	case config.BackendMySQL:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := mysqlp.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return mysqlp.NewHistoryRepository(db), db, nil
	case config.BackendPostgres:
		db, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewHistoryRepository(db), db, nil
	default:
		return memory.NewStore(), nil, nil
	}
}
