package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa de kickledger.
type Config struct {
	League  LeagueConfig  `yaml:"league"`
	API     APIConfig     `yaml:"api"`
	Pacing  PacingConfig  `yaml:"pacing"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// LeagueConfig identifica la liga a analizar. Si ID está vacío, el CLI la
// resuelve por Name contra las ligas del usuario logueado (y toma la fecha
// de creación de la liga como StartDate).
type LeagueConfig struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	StartDate string `yaml:"start_date"` // RFC3339; vacío = fecha de creación de la liga
}

// APIConfig contiene el base URL del API y el tamaño de página del feed.
type APIConfig struct {
	BaseURL      string `yaml:"base_url"`
	FeedPageSize int    `yaml:"feed_page_size"`
}

// PacingConfig controla el ritmo de llamadas al upstream. El API de
// Kickbase no documenta límites; el default (1 req/s) replica el pacing
// conservador que siempre usamos contra él.
type PacingConfig struct {
	RequestIntervalMS int `yaml:"request_interval_ms"`
	Burst             int `yaml:"burst"`
}

// StorageConfig elige el backend de persistencia.
type StorageConfig struct {
	Backend string `yaml:"backend"` // json | sqlite
	Dir     string `yaml:"dir"`     // directorio para los documentos JSON
	DSN     string `yaml:"dsn"`     // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Credentials son las credenciales de login, solo desde el entorno
// (KICKBASE_EMAIL / KICKBASE_PASSWORD) — nunca van al YAML.
type Credentials struct {
	Email    string
	Password string
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// RequestInterval devuelve el intervalo entre llamadas como time.Duration.
func (c *Config) RequestInterval() time.Duration {
	return time.Duration(c.Pacing.RequestIntervalMS) * time.Millisecond
}

// LoadCredentials lee las credenciales del entorno.
func LoadCredentials() (Credentials, error) {
	creds := Credentials{
		Email:    os.Getenv("KICKBASE_EMAIL"),
		Password: os.Getenv("KICKBASE_PASSWORD"),
	}
	if creds.Email == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("config.LoadCredentials: KICKBASE_EMAIL y KICKBASE_PASSWORD son requeridos")
	}
	return creds, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("KICKBASE_LEAGUE_ID"); v != "" {
		cfg.League.ID = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.kickbase.com"
	}
	if cfg.API.FeedPageSize <= 0 {
		cfg.API.FeedPageSize = 26 // el feed de actividades pagina de a 26
	}
	if cfg.Pacing.RequestIntervalMS <= 0 {
		cfg.Pacing.RequestIntervalMS = 1000
	}
	if cfg.Pacing.Burst <= 0 {
		cfg.Pacing.Burst = 1
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "json"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = "data"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "kickledger.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
