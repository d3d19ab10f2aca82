package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
)

/*
dirección del backend: variable de entorno PEDIDOS_API_ADDRESS o flag --api;
ruta de la base local: PEDIDOS_DATABASE o flag --db;
archivo de sesión: PEDIDOS_SESSION o flag --session.
*/

type Config struct {
	APIAddress   string        `env:"PEDIDOS_API_ADDRESS" envDefault:"http://localhost:3000"`
	DatabasePath string        `env:"PEDIDOS_DATABASE"`
	SessionPath  string        `env:"PEDIDOS_SESSION"`
	HTTPTimeout  time.Duration `env:"PEDIDOS_HTTP_TIMEOUT" envDefault:"60s"`
}

func NewConfig() (*Config, error) {
	var params Config
	if err := env.Parse(&params); err != nil {
		return nil, err
	}

	if params.DatabasePath == "" || params.SessionPath == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config dir: %w", err)
		}
		dir := filepath.Join(base, "pedidos")
		if params.DatabasePath == "" {
			params.DatabasePath = filepath.Join(dir, "pedidos.db")
		}
		if params.SessionPath == "" {
			params.SessionPath = filepath.Join(dir, "session.json")
		}
	}

	return &params, nil
}
