package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PauloHFS/blogicum/internal/config"
	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/logging"
)

// RootCmd sem subcomando sobe o servidor.
var RootCmd = &cobra.Command{
	Use:           "blogicum [command]",
	Short:         "Blogicum - single binary blog",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB carrega a configuração, inicia o log e abre o pool com as migrações aplicadas.
func openDB(cmd *cobra.Command) (*config.Config, *db.DualPool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logging.Init()

	pool, err := db.OpenDualPool(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(cmd.Context(), pool.Write); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return cfg, pool, nil
}
