package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/logging"
)

var fixturesPath string

func init() {
	RootCmd.AddCommand(migrateCmd)
	RootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&fixturesPath, "fixtures", "", "YAML file with fixtures (default: embedded demo data)")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, pool, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer pool.Close()

		logging.Get().Info("migrations executed successfully")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run migrations and seed the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := db.DefaultFixtures
		if fixturesPath != "" {
			b, err := os.ReadFile(fixturesPath)
			if err != nil {
				return fmt.Errorf("failed to read fixtures: %w", err)
			}
			data = b
		}

		_, pool, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.Seed(cmd.Context(), pool.QueriesWrite(), data); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		logging.Get().Info("database seeded successfully")
		return nil
	},
}
