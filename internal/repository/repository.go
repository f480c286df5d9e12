package repository

import (
	"fmt"

	"github.com/mgdevhub/gym-meals/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        text PRIMARY KEY,
	value      text NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// Repository is a durable key-value store on Postgres. All application
// state is JSON text under fixed per-device keys.
type Repository struct {
	db *sqlx.DB
}

type Config struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}

func New(cfg Config) (*Repository, error) {
	db, err := sqlx.Connect("pgx", cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(kvSchema); err != nil {
		return nil, errors.Wrap(err, "failed to ensure kv_store schema")
	}

	logger.Logger().Info("Connected to database successfully")

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
