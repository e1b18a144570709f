package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/PauloHFS/blogicum/migrations"
)

// RunMigrations aplica as migrações goose embutidas que ainda não rodaram.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("falha ao criar provider de migrações: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("falha ao executar migrações: %w", err)
	}

	return nil
}
