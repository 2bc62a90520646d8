package app

import (
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/repository"
)

// Config holds the application configuration, loadable from environment
// variables (ORDERS_ prefix) or YAML config files.
type Config struct {
	Backend     string       `default:"sqlite" usage:"Storage backend: sqlite, postgres or file"`
	DatabaseURL string       `usage:"PostgreSQL connection URL (ORDERS_DATABASE_URL or DATABASE_URL)"`
	SQLite      SQLiteConfig `env:"SQLITE" yaml:"sqlite"`
	Files       FilesConfig
}

// SQLiteConfig locates the SQLite database.
type SQLiteConfig struct {
	Path string `default:"data/orders.db" usage:"SQLite database file"`
}

// FilesConfig locates the order files of the file backend. The extension
// selects the format; a trailing .gz compresses it.
type FilesConfig struct {
	Cake string `default:"data/cakes.csv" usage:"Cake orders file"`
	Book string `default:"data/books.json" usage:"Book orders file"`
	Toy  string `default:"data/toys.xml" usage:"Toy orders file"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "ORDERS",
		Files:     []string{"config.yaml", "/etc/orders/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if _, err := cfg.Repository(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyPlatformDefaults maps the platform-provided DATABASE_URL to the
// application's ORDERS_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
}

// Repository returns the repository factory configuration.
func (c *Config) Repository() (repository.Config, error) {
	backend, err := repository.ParseBackend(c.Backend)
	if err != nil {
		return repository.Config{}, err
	}
	if backend == repository.BackendPostgres && c.DatabaseURL == "" {
		return repository.Config{}, errors.New("database URL is required: set ORDERS_DATABASE_URL or DATABASE_URL")
	}
	return repository.Config{
		Backend:     backend,
		SQLitePath:  c.SQLite.Path,
		DatabaseURL: c.DatabaseURL,
		Files: map[item.Category]string{
			item.CategoryCake: c.Files.Cake,
			item.CategoryBook: c.Files.Book,
			item.CategoryToy:  c.Files.Toy,
		},
	}, nil
}
