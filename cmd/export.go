package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"catalog-exporter/core/config"
	"catalog-exporter/core/database"
	"catalog-exporter/core/logger"
	"catalog-exporter/core/storage"
	"catalog-exporter/feature/catalog"
	"catalog-exporter/feature/export"
	"catalog-exporter/feature/match"
	"catalog-exporter/feature/reference"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportProducts  []string
	exportAll       bool
	exportFilter    string
	exportFrames    string
	exportOutput    string
	exportAllowList string
	exportUpload    bool
)

// exportCmd runs the full pipeline and writes the CSV export.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export image URL combinations to CSV",
	Long: `Fetches product configurations, enumerates every renderable option
combination, matches each against the reference dataset and writes the
result as semicolon-separated CSV.`,
	Run: func(cmd *cobra.Command, args []string) {
		runExport(cmd)
	},
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportProducts, "products", nil, "Explicit product codes to export")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every eligible (Production) product")
	exportCmd.Flags().StringVar(&exportFilter, "filter", "", "Narrow the product list by case-insensitive substring")
	exportCmd.Flags().StringVar(&exportFrames, "frames", "", "Comma-separated viewing angles 1-36 (default from config)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output CSV path (default from config)")
	exportCmd.Flags().StringVar(&exportAllowList, "allow-list", "", "Comma-separated material option codes to keep")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "Upload the finished CSV to object storage")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	if !exportAll && len(exportProducts) == 0 && exportFilter == "" {
		logg.Fatal("Nothing selected: pass --products, --filter or --all")
	}

	// Flag overrides on top of config defaults
	if exportOutput != "" {
		cfg.Export.OutputFile = exportOutput
	}
	if exportAllowList != "" {
		cfg.Export.MaterialAllowList = exportAllowList
	}

	opts := export.Options{
		Products: exportProducts,
		Filter:   exportFilter,
	}
	if exportFrames != "" {
		frames, err := export.ParseFrames(exportFrames)
		if err != nil {
			logg.Fatal("Invalid --frames", zap.Error(err))
		}
		opts.Frames = frames
	}

	// The reference dataset is mandatory: a broken schema aborts the run
	// before any product is fetched.
	table := loadReferenceTable(cmd.Context(), cfg, logg)

	matcher := match.NewMatcher(cfg.Match, table, logg)
	client := catalog.NewClient(cfg.Catalog, logg)
	svc := export.NewService(client, cfg.Catalog, cfg.Export, matcher, logg)

	started := time.Now()
	res, err := svc.Run(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, export.ErrNoEligibleProducts) {
			logg.Fatal("No eligible products matched the selection")
		}
		logg.Fatal("Export run failed", zap.Error(err))
	}

	if res.Set.Len() == 0 {
		logg.Warn("Run finished but produced zero rows",
			zap.Int("products", res.Products),
			zap.Int("skipped", res.Skipped))
	}

	if err := export.WriteCSVFile(cfg.Export.OutputFile, res.Set); err != nil {
		logg.Fatal("Failed to write CSV", zap.Error(err))
	}

	logg.Info("Export written",
		zap.String("file", cfg.Export.OutputFile),
		zap.Int("products", res.Products),
		zap.Int("skipped", res.Skipped),
		zap.Int("rows", res.Set.Len()),
		zap.Int("matched", res.MatchStats.Matched),
		zap.Int("unmatched", res.MatchStats.Unmatched))

	if exportUpload || cfg.Storage.Enabled {
		uploadExport(cmd, cfg, logg)
	}

	recordRun(cmd, cfg, logg, started, res)
}

// loadReferenceTable loads and indexes the reference dataset, from object
// storage when an object name is configured and from local disk otherwise.
// Any failure is fatal: matching has no safe partial mode.
func loadReferenceTable(ctx context.Context, cfg *config.Config, logg *zap.Logger) *reference.Table {
	var (
		table  *reference.Table
		source string
		err    error
	)
	if cfg.Reference.Object != "" {
		source = cfg.Storage.Bucket + "/" + cfg.Reference.Object
		store, serr := storage.NewClient(cfg.Storage)
		if serr != nil {
			logg.Fatal("Failed to create storage client", zap.Error(serr))
		}
		table, err = reference.FromStorage(ctx, store, cfg.Storage.Bucket, cfg.Reference)
	} else {
		source = cfg.Reference.Path
		table, err = reference.Load(cfg.Reference)
	}
	if err != nil {
		var schemaErr *reference.SchemaError
		if errors.As(err, &schemaErr) && len(schemaErr.Missing) > 0 {
			logg.Fatal("Reference dataset schema invalid",
				zap.String("source", source),
				zap.Strings("missing_columns", schemaErr.Missing))
		}
		logg.Fatal("Failed to load reference dataset", zap.Error(err))
	}
	logg.Info("Reference dataset loaded",
		zap.String("source", source),
		zap.Int("records", len(table.Records)))
	return table
}

// uploadExport pushes the finished CSV to the configured bucket.
func uploadExport(cmd *cobra.Command, cfg *config.Config, logg *zap.Logger) {
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	f, err := os.Open(cfg.Export.OutputFile)
	if err != nil {
		logg.Fatal("Failed to open CSV for upload", zap.Error(err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logg.Fatal("Failed to stat CSV", zap.Error(err))
	}

	objectName := fmt.Sprintf("%s/%s", time.Now().Format("2006-01-02"), info.Name())
	if err := storage.Upload(cmd.Context(), store, cfg.Storage.Bucket, objectName, f, info.Size(), "text/csv"); err != nil {
		logg.Fatal("Upload failed", zap.Error(err))
	}
	logg.Info("Export uploaded",
		zap.String("bucket", cfg.Storage.Bucket),
		zap.String("object", objectName))
}

// recordRun journals the run summary when a database is configured.
func recordRun(cmd *cobra.Command, cfg *config.Config, logg *zap.Logger, started time.Time, res *export.Result) {
	if !cfg.Database.Enabled() {
		return
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("Journal database connection failed", zap.Error(err))
		return
	}

	journal := export.NewJournal(db)
	if err := journal.Migrate(); err != nil {
		logg.Warn("Journal migration failed", zap.Error(err))
		return
	}

	rec := &export.RunRecord{
		ID:         uuid.NewString(),
		StartedAt:  started,
		FinishedAt: time.Now(),
		Products:   res.Products,
		Skipped:    res.Skipped,
		Rows:       res.Set.Len(),
		Matched:    res.MatchStats.Matched,
		Unmatched:  res.MatchStats.Unmatched,
		OutputFile: cfg.Export.OutputFile,
	}
	if err := journal.Record(cmd.Context(), rec); err != nil {
		logg.Warn("Failed to journal run", zap.Error(err))
		return
	}
	logg.Info("Run journaled", zap.String("run_id", rec.ID))
}
