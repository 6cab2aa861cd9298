package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	PokeAPI    PokeAPIConfig    `yaml:"pokeapi"`
	Pagination PaginationConfig `yaml:"pagination"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// PokeAPIConfig holds settings for the upstream REST API.
type PokeAPIConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"POKEAPI_BASE_URL"        env-default:"https://pokeapi.co/api/v2"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"POKEAPI_REQUEST_TIMEOUT" env-default:"10s"`
	RetryDelay     time.Duration `yaml:"retry_delay"     env:"POKEAPI_RETRY_DELAY"     env-default:"500ms"`
}

// PaginationConfig holds the listing cursor settings.
type PaginationConfig struct {
	// FirstStep is the limit of the first page; 0 derives it from ViewportWidth.
	FirstStep     int  `yaml:"first_step"     env:"PAGINATION_FIRST_STEP"     env-default:"0"`
	Step          int  `yaml:"step"           env:"PAGINATION_STEP"           env-default:"20"`
	ViewportWidth int  `yaml:"viewport_width" env:"PAGINATION_VIEWPORT_WIDTH" env-default:"1280"`
	WithSpecies   bool `yaml:"with_species"   env:"PAGINATION_WITH_SPECIES"   env-default:"true"`
	WithEvolution bool `yaml:"with_evolution" env:"PAGINATION_WITH_EVOLUTION" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits for the REST surface.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"              env-default:"120"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
