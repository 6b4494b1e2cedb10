package cmd

import (
	"fmt"
	"os"

	"catalog-exporter/core/config"
	"catalog-exporter/core/database"
	"catalog-exporter/core/logger"
	"catalog-exporter/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runsLimit int

// runsCmd lists recent journaled export runs.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent export runs",
	Long:  `Lists the most recent journaled export runs, newest first. Requires a configured journal database.`,
	Run: func(cmd *cobra.Command, args []string) {
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

		if !cfg.Database.Enabled() {
			logg.Fatal("No journal database configured (set DATABASE_DRIVER)")
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to journal database", zap.Error(err))
		}

		journal := export.NewJournal(db)
		if err := journal.Migrate(); err != nil {
			logg.Fatal("Journal migration failed", zap.Error(err))
		}

		runs, err := journal.Recent(cmd.Context(), runsLimit)
		if err != nil {
			logg.Fatal("Failed to list runs", zap.Error(err))
		}
		if len(runs) == 0 {
			fmt.Println("No journaled runs.")
			return
		}

		fmt.Printf("%-36s %-20s %8s %8s %8s %s\n", "RUN", "STARTED", "PRODUCTS", "ROWS", "MATCHED", "FILE")
		for _, r := range runs {
			fmt.Printf("%-36s %-20s %8d %8d %8d %s\n",
				r.ID,
				r.StartedAt.Format("2006-01-02 15:04:05"),
				r.Products,
				r.Rows,
				r.Matched,
				r.OutputFile)
		}
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 10, "Maximum number of runs to list")
	RootCmd.AddCommand(runsCmd)
}
