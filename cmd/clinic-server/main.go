package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mediflow/clinic/internal/config"
	"github.com/mediflow/clinic/internal/domain/catalog"
	"github.com/mediflow/clinic/internal/domain/doctor"
	"github.com/mediflow/clinic/internal/domain/patient"
	"github.com/mediflow/clinic/internal/domain/prescription"
	"github.com/mediflow/clinic/internal/domain/visit"
	"github.com/mediflow/clinic/internal/platform/db"
	"github.com/mediflow/clinic/internal/platform/ident"
	"github.com/mediflow/clinic/internal/platform/middleware"
	"github.com/mediflow/clinic/internal/platform/sandbox"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.UseMemoryStore() {
				return fmt.Errorf("DATABASE_URL is not set; nothing to migrate")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s).\n", count)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.UseMemoryStore() {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			m := db.NewMigrator(pool)
			if err := m.EnsureMigrationsTable(ctx); err != nil {
				return err
			}
			applied, err := m.AppliedVersions(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%-10s %-30s %s\n", "VERSION", "NAME", "STATUS")
			for _, mig := range db.Migrations {
				status := "pending"
				if applied[mig.Version] {
					status = "applied"
				}
				fmt.Printf("%-10d %-30s %s\n", mig.Version, mig.Name, status)
			}
			return nil
		},
	})

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo dataset into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.UseMemoryStore() {
				return fmt.Errorf("DATABASE_URL is not set; the in-memory store seeds itself when SEED_DEMO_DATA=true")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			res, err := sandbox.Seed(ctx, sandbox.Repos{
				Doctors:  doctor.NewRepo(pool),
				Patients: patient.NewRepo(pool),
				Catalog:  catalog.NewRepo(pool),
				Visits:   visit.NewRepo(pool),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d doctors, %d patients, %d medicines, %d lab tests, %d visits.\n",
				res.Doctors, res.Patients, res.Medicines, res.LabTests, res.Visits)
			return nil
		},
	}
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	var (
		pool     *pgxpool.Pool
		doctors  doctor.Repository
		patients patient.Repository
		cat      catalog.Repository
		visits   visit.Repository
	)
	if cfg.UseMemoryStore() {
		latency := time.Duration(cfg.StoreLatencyMS) * time.Millisecond
		doctors = doctor.NewMemRepo()
		patients = patient.NewMemRepo(latency)
		cat = catalog.NewMemRepo(latency)
		visits = visit.NewMemRepo(latency)
		logger.Info().Msg("using in-memory store")

		if cfg.SeedDemoData {
			res, err := sandbox.Seed(ctx, sandbox.Repos{Doctors: doctors, Patients: patients, Catalog: cat, Visits: visits})
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to seed demo data")
			}
			logger.Info().
				Int("patients", res.Patients).
				Int("medicines", res.Medicines).
				Int("visits", res.Visits).
				Msg("seeded demo data")
		}
	} else {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")

		doctors = doctor.NewRepo(pool)
		patients = patient.NewRepo(pool)
		cat = catalog.NewRepo(pool)
		visits = visit.NewRepo(pool)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	e.GET("/healthz", db.HealthHandler(pool))

	api := e.Group("/api")

	patient.NewHandler(patient.NewService(patients)).RegisterRoutes(api)
	catalog.NewHandler(catalog.NewService(cat)).RegisterRoutes(api)

	composer := visit.NewComposer(visits, ident.UUID{})
	visit.NewHandler(visit.NewService(visits), composer).RegisterRoutes(api)

	prescription.NewHandler(prescription.NewService(doctors, patients, visits, cfg.VerifyBaseURL)).RegisterRoutes(api, e)

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(timeoutCtx)
}
