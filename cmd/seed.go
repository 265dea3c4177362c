package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"university-registrar/internal/infrastructure/database"
	"university-registrar/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data",
	Long:  "Apply pending migrations and load a small sample dataset for local development",
	Run:   runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	db, err := database.NewConnection(*openDatabase())
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db)
	if err := runner.RunMigrations(); err != nil {
		logger.Error("Migration failed: %v", err)
		os.Exit(1)
	}

	if err := database.Seed(db); err != nil {
		logger.Error("Seeding failed: %v", err)
		os.Exit(1)
	}

	fmt.Println("Sample data loaded successfully!")
}
