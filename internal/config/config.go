package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend selects which persistence collaborator the services talk to.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSupabase Backend = "supabase"
)

type Config struct {
	App struct {
		Name  string `envconfig:"APP_NAME" default:"Savvy"`
		Port  int    `envconfig:"PORT" default:"8080"`
		Debug bool   `envconfig:"DEBUG" default:"false"`
	}

	Backend Backend `envconfig:"BACKEND" default:"postgres"`

	// Currency is the label shown in front of every formatted amount.
	Currency string `envconfig:"CURRENCY" default:"KSh"`

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"savvy"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Supabase struct {
		URL       string `envconfig:"SUPABASE_URL"`
		Key       string `envconfig:"SUPABASE_ANON_KEY"`
		JWTSecret string `envconfig:"SUPABASE_JWT_SECRET"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	// UserID identifies the local user when running against plain Postgres,
	// where there is no sign-in flow.
	UserID string `envconfig:"USER_ID"`
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendPostgres:
		return nil
	case BackendSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return fmt.Errorf("supabase backend requires SUPABASE_URL and SUPABASE_ANON_KEY")
		}

		return nil
	}

	return fmt.Errorf("unknown backend %q", c.Backend)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
