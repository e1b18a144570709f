package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/PauloHFS/blogicum/internal/config"
)

// DualPool separa leitura e escrita: o SQLite aceita um único escritor, então
// o pool de escrita fica com uma conexão e as leituras escalam com as CPUs.
type DualPool struct {
	Read  *sql.DB
	Write *sql.DB
}

type PoolConfig struct {
	ReadMaxOpen  int
	ReadMaxIdle  int
	WriteMaxOpen int
	WriteMaxIdle int
}

var defaultPoolConfig = PoolConfig{
	ReadMaxOpen:  runtime.NumCPU() * 2,
	ReadMaxIdle:  runtime.NumCPU(),
	WriteMaxOpen: 1,
	WriteMaxIdle: 1,
}

func OpenDualPool(databaseURL string, opts ...func(*PoolConfig)) (*DualPool, error) {
	cfg := defaultPoolConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	sqliteCfg := config.GetSQLiteConfig()

	writeDB := openPool(sqliteCfg, databaseURL, cfg.WriteMaxOpen, cfg.WriteMaxIdle)
	readDB := openPool(sqliteCfg, databaseURL, cfg.ReadMaxOpen, cfg.ReadMaxIdle)
	pool := &DualPool{Read: readDB, Write: writeDB}

	// sql.OpenDB é preguiçoso: o ping abre a primeira conexão e expõe DSN ou
	// PRAGMA inválidos já aqui.
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}
	return pool, nil
}

// connector abre conexões go-sqlite3 rodando os PRAGMAs por conexão em cada
// uma, inclusive nas que o pool recria depois do ConnMaxLifetime.
type connector struct {
	dsn    string
	driver *sqlite3.SQLiteDriver
}

func newConnector(cfg config.SQLiteConfig, databaseURL string) *connector {
	pragmas := cfg.ConnPragmas()
	return &connector{
		dsn: cfg.DSN(databaseURL),
		driver: &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				for _, pragma := range pragmas {
					if _, err := conn.Exec(pragma, nil); err != nil {
						return fmt.Errorf("failed to run %q: %w", pragma, err)
					}
				}
				return nil
			},
		},
	}
}

func (c *connector) Connect(context.Context) (driver.Conn, error) {
	return c.driver.Open(c.dsn)
}

func (c *connector) Driver() driver.Driver {
	return c.driver
}

func openPool(cfg config.SQLiteConfig, databaseURL string, maxOpen, maxIdle int) *sql.DB {
	conn := sql.OpenDB(newConnector(cfg, databaseURL))
	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(maxIdle)
	conn.SetConnMaxIdleTime(5 * time.Minute)
	conn.SetConnMaxLifetime(time.Hour)
	return conn
}

func WithReadPoolSize(maxOpen, maxIdle int) func(*PoolConfig) {
	return func(cfg *PoolConfig) {
		cfg.ReadMaxOpen = maxOpen
		cfg.ReadMaxIdle = maxIdle
	}
}

func (p *DualPool) Ping(ctx context.Context) error {
	if err := p.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write pool: %w", err)
	}
	if err := p.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read pool: %w", err)
	}
	return nil
}

func (p *DualPool) Close() error {
	var errs []error
	if p.Read != nil {
		if err := p.Read.Close(); err != nil {
			errs = append(errs, fmt.Errorf("read pool close: %w", err))
		}
	}
	if p.Write != nil {
		if err := p.Write.Close(); err != nil {
			errs = append(errs, fmt.Errorf("write pool close: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (p *DualPool) Queries() *Queries {
	return New(p.Read)
}

func (p *DualPool) QueriesWrite() *Queries {
	return New(p.Write)
}
