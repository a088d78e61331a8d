package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/docport/docport/internal/config"
	"github.com/docport/docport/internal/domain/booking"
	"github.com/docport/docport/internal/domain/catalog"
	"github.com/docport/docport/internal/domain/doctors"
	"github.com/docport/docport/internal/domain/identity"
	"github.com/docport/docport/internal/domain/payment"
	"github.com/docport/docport/internal/platform/auth"
	"github.com/docport/docport/internal/platform/db"
	"github.com/docport/docport/internal/platform/middleware"
	"github.com/docport/docport/internal/platform/payments"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "booking-server",
		Short: "Appointment booking API server",
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
		Short: "Start the booking API server",
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

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default appointment-option catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := catalog.NewOptionRepoPG(pool)
			existing, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			if existing > 0 {
				fmt.Printf("Catalog already has %d options; nothing to do.\n", existing)
				return nil
			}

			for _, opt := range defaultCatalog() {
				if err := repo.Create(ctx, opt); err != nil {
					return fmt.Errorf("seed option %s: %w", opt.Name, err)
				}
			}
			fmt.Printf("Seeded %d appointment options.\n", len(defaultCatalog()))
			return nil
		},
	}
}

func defaultCatalog() []*catalog.AppointmentOption {
	slots := []string{
		"08:00 AM - 08:30 AM",
		"08:30 AM - 09:00 AM",
		"09:00 AM - 09:30 AM",
		"09:30 AM - 10:00 AM",
		"10:00 AM - 10:30 AM",
		"10:30 AM - 11:00 AM",
		"11:00 AM - 11:30 AM",
		"02:00 PM - 02:30 PM",
		"02:30 PM - 03:00 PM",
		"03:00 PM - 03:30 PM",
	}
	return []*catalog.AppointmentOption{
		{Name: "Teeth Orthodontics", Price: 100, Slots: slots},
		{Name: "Cosmetic Dentistry", Price: 120, Slots: slots},
		{Name: "Teeth Whitening", Price: 80, Slots: slots},
		{Name: "Cavity Protection", Price: 90, Slots: slots},
		{Name: "Pediatric Dental", Price: 70, Slots: slots},
		{Name: "Oral Surgery", Price: 300, Slots: slots},
	}
}

// errorHandler renders every failed request as the envelope clients
// expect: {"success": false, "error": "..."} with the real status code.
func errorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}

		if err := c.JSON(code, map[string]interface{}{
			"success": false,
			"error":   message,
		}); err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Repositories
	optionRepo := catalog.NewOptionRepoPG(pool)
	bookingRepo := booking.NewRepoPG(pool)
	userRepo := identity.NewRepoPG(pool)
	doctorRepo := doctors.NewRepoPG(pool)
	paymentRepo := payment.NewRepoPG(pool)

	// Services
	issuer := auth.NewTokenIssuer([]byte(cfg.AccessTokenSecret),
		time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	gateway := payments.NewStripeGateway(cfg.StripeSecretKey)
	txRunner := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.WithTransaction(ctx, pool, fn)
	}

	catalogSvc := catalog.NewService(optionRepo)
	bookingSvc := booking.NewService(bookingRepo)
	identitySvc := identity.NewService(userRepo, issuer)
	doctorSvc := doctors.NewService(doctorRepo)
	paymentSvc := payment.NewService(paymentRepo, bookingRepo, gateway, cfg.Currency, txRunner)

	// Auth gates
	requireUser := auth.RequireUser([]byte(cfg.AccessTokenSecret))
	requireAdmin := auth.RequireAdmin(identitySvc)

	// Liveness
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "booking server is running",
		})
	})

	// Routes
	catalog.NewHandler(catalogSvc).RegisterRoutes(e)
	booking.NewHandler(bookingSvc).RegisterRoutes(e, requireUser)
	identity.NewHandler(identitySvc).RegisterRoutes(e, requireUser, requireAdmin)
	doctors.NewHandler(doctorSvc).RegisterRoutes(e, requireUser, requireAdmin)
	payment.NewHandler(paymentSvc).RegisterRoutes(e)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
