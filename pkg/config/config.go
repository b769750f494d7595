package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8080" validate:"min=1,max=65535"`

	// StoreDriver picks the slot-store backend for the persisted cart
	// and session.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"file" validate:"oneof=file sqlite"`
	StorePath   string `envconfig:"STORE_PATH" default:"storefront-state.json" validate:"required"`

	// CatalogURL, when set, takes precedence over CatalogPath.
	CatalogPath string `envconfig:"CATALOG_PATH" default:"data/productos.json"`
	CatalogURL  string `envconfig:"CATALOG_URL" validate:"omitempty,url"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
