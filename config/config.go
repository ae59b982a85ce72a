package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del journal.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ImportConfig controla cómo se importan y muestran los ficheros.
type ImportConfig struct {
	Workers               int `yaml:"workers"`                 // ficheros en paralelo; 0 = NumCPU
	MaxDisplayDiagnostics int `yaml:"max_display_diagnostics"` // diagnósticos listados antes de truncar
}

// StorageConfig controla dónde se persiste el journal.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
	Key string `yaml:"key"` // clave del documento dentro de la base de datos
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del entorno sobreescriben los del YAML para las keys que correspondan.
// Si el archivo YAML no existe se usan los valores por defecto.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// sin archivo: sólo entorno + defaults
	case err != nil:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Default devuelve la configuración por defecto sin leer disco ni entorno.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("JOURNAL_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("JOURNAL_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Import.Workers = n
		}
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Import.Workers < 0 {
		cfg.Import.Workers = 0
	}
	if cfg.Import.MaxDisplayDiagnostics <= 0 {
		cfg.Import.MaxDisplayDiagnostics = 10
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "journal.db"
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = "journal"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
