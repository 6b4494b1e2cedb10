package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-exporter/core/config"
	"catalog-exporter/core/database"
	"catalog-exporter/core/loader"
	"catalog-exporter/core/logger"
	"catalog-exporter/core/middleware/auth"
	"catalog-exporter/core/middleware/rayid"
	"catalog-exporter/feature/catalog"
	"catalog-exporter/feature/export"
	"catalog-exporter/feature/match"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the export HTTP server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Load Reference Dataset (Mandatory)
		table := loadReferenceTable(cmd.Context(), cfg, logg)

		// 4. Connect to Journal Database (Optional)
		var journal *export.Journal
		if cfg.Database.Enabled() {
			if db, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional journal database connection failed", zap.Error(err))
			} else {
				journal = export.NewJournal(db)
				if err := journal.Migrate(); err != nil {
					logg.Warn("Journal migration failed", zap.Error(err))
					journal = nil
				} else {
					logg.Info("Journal database connected")
				}
			}
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Build the Export Pipeline
		matcher := match.NewMatcher(cfg.Match, table, logg)
		client := catalog.NewClient(cfg.Catalog, logg)
		svc := export.NewService(client, cfg.Catalog, cfg.Export, matcher, logg)

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(export.NewFeature(svc, journal, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			// Log error if happened
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
