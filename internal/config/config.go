package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config carries everything the process needs; collection names and
// endpoints are injected into the repositories at construction, never read
// from ambient state.
type Config struct {
	App struct {
		Name     string `koanf:"name"`
		Env      string `koanf:"env"`
		HTTPAddr string `koanf:"http_addr"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`

	Store struct {
		// Kind selects the repository backend: "mongo" or "memory".
		Kind string `koanf:"kind"`
	} `koanf:"store"`

	Mongo struct {
		URI                string `koanf:"uri"`
		Database           string `koanf:"database"`
		OrdersCollection   string `koanf:"orders_collection"`
		ProductsCollection string `koanf:"products_collection"`
	} `koanf:"mongo"`
}

// Load reads base.yaml from pathDir, overlays an optional <env>.yaml, then
// environment variables (prefix CATALOG_, nested keys joined with __,
// e.g. CATALOG_MONGO__URI).
func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// Optional per-environment overlay; missing is fine for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	if err := k.Load(env.Provider("CATALOG_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "CATALOG_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	switch c.Store.Kind {
	case StoreMemory:
	case StoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri required when store.kind is mongo")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("mongo.database required when store.kind is mongo")
		}
		if c.Mongo.OrdersCollection == "" || c.Mongo.ProductsCollection == "" {
			return fmt.Errorf("mongo collection names required when store.kind is mongo")
		}
	default:
		return fmt.Errorf("store.kind must be %q or %q", StoreMongo, StoreMemory)
	}
	return nil
}
