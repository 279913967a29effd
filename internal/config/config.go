package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Sandy4321/MovieRecommend/internal/scoring"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Mongo  MongoConfig  `koanf:"mongo"`
	Redis  RedisConfig  `koanf:"redis"`
	HTTP   HTTPConfig   `koanf:"http"`
	Log    LogConfig    `koanf:"log"`
	Corpus CorpusConfig `koanf:"corpus"`
	Scan   ScanConfig   `koanf:"scan"`
	Social SocialConfig `koanf:"social"`
	Batch  BatchConfig  `koanf:"batch"`
}

type MongoConfig struct {
	URI      string `koanf:"uri" validate:"required"`
	Database string `koanf:"database" validate:"required"`
}

// RedisConfig: an empty Addr disables the cache.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db" validate:"gte=0"`
	TTL      time.Duration `koanf:"ttl" validate:"gt=0"`
}

type HTTPConfig struct {
	Port      string `koanf:"port" validate:"required,numeric"`
	JWTSecret string `koanf:"jwt_secret" validate:"required"`
	// requests per minute per IP on the full-scan endpoints
	ScanRateLimit int `koanf:"scan_rate_limit" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// CorpusConfig is the dataset snapshot used for TF-IDF. The sizes are frozen
// with the data they were counted on and must be bumped together with it.
type CorpusConfig struct {
	Version      string  `koanf:"version" validate:"required"`
	TaggedMovies int     `koanf:"tagged_movies" validate:"gt=0"`
	GenreMovies  int     `koanf:"genre_movies" validate:"gt=0"`
	Actors       int     `koanf:"actors" validate:"gt=0"`
	TagBase      float64 `koanf:"tag_base" validate:"gt=1"`
	GenreBase    float64 `koanf:"genre_base" validate:"gt=1"`
	ActorBase    float64 `koanf:"actor_base" validate:"gt=1"`
	MentionBase  float64 `koanf:"mention_base" validate:"gt=1"`
}

// ScanConfig bounds the full-collection scans.
type ScanConfig struct {
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	ProgressInterval int           `koanf:"progress_interval" validate:"gt=0"`
}

// SocialConfig points at the profile extraction / segmentation service.
// An empty BaseURL leaves only stored profiles and dictionary segmentation.
type SocialConfig struct {
	BaseURL   string        `koanf:"base_url" validate:"omitempty,url"`
	Timeout   time.Duration `koanf:"timeout" validate:"gt=0"`
	RatePerS  float64       `koanf:"rate_per_second" validate:"gt=0"`
	Burst     int           `koanf:"burst" validate:"gt=0"`
	MaxErrors uint32        `koanf:"max_consecutive_errors" validate:"gt=0"`
}

type BatchConfig struct {
	Parallelism int `koanf:"parallelism" validate:"gt=0"`
}

// ConfigPathEnvVar overrides the YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	p := scoring.DefaultParams()
	return &Config{
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "movieRecommend",
		},
		Redis: RedisConfig{
			TTL: time.Hour,
		},
		HTTP: HTTPConfig{
			Port:          "8080",
			JWTSecret:     PlaceholderJWTSecret,
			ScanRateLimit: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Corpus: CorpusConfig{
			Version:      "movielens-2016-imdb",
			TaggedMovies: p.TaggedMovies,
			GenreMovies:  p.GenreMovies,
			Actors:       p.Actors,
			TagBase:      p.TagBase,
			GenreBase:    p.GenreBase,
			ActorBase:    p.ActorBase,
			MentionBase:  p.MentionBase,
		},
		Scan: ScanConfig{
			Timeout:          5 * time.Minute,
			ProgressInterval: 10000,
		},
		Social: SocialConfig{
			Timeout:   10 * time.Second,
			RatePerS:  5,
			Burst:     5,
			MaxErrors: 5,
		},
		Batch: BatchConfig{
			Parallelism: 4,
		},
	}
}

// Load reads .env (if any), then layers defaults, the optional YAML file and
// environment variables, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every `validate` tag of the configuration tree.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// PlaceholderJWTSecret is the development default for http.jwt_secret.
const PlaceholderJWTSecret = "super-secret"

// ErrPlaceholderSecret rejects the development JWT secret outside debugging.
var ErrPlaceholderSecret = errors.New("http.jwt_secret is the development placeholder; set JWT_SECRET")

// CheckAdminSecret fails when the admin routes would be guarded by the
// placeholder secret. Debug and trace levels allow it for local runs.
func (c *Config) CheckAdminSecret() error {
	if c.HTTP.JWTSecret != PlaceholderJWTSecret {
		return nil
	}
	switch c.Log.Level {
	case "debug", "trace":
		return nil
	}
	return ErrPlaceholderSecret
}

// ScoringParams exposes the corpus snapshot to the scoring package.
func (c *Config) ScoringParams() scoring.Params {
	return scoring.Params{
		TaggedMovies: c.Corpus.TaggedMovies,
		GenreMovies:  c.Corpus.GenreMovies,
		Actors:       c.Corpus.Actors,
		TagBase:      c.Corpus.TagBase,
		GenreBase:    c.Corpus.GenreBase,
		ActorBase:    c.Corpus.ActorBase,
		MentionBase:  c.Corpus.MentionBase,
	}
}

// envMappings keeps the historical variable names of the deployment working.
var envMappings = map[string]string{
	"mongo_uri":      "mongo.uri",
	"mongo_db":       "mongo.database",
	"redis_addr":     "redis.addr",
	"redis_password": "redis.password",
	"redis_db":       "redis.db",
	"redis_ttl":      "redis.ttl",
	"http_port":      "http.port",
	"jwt_secret":     "http.jwt_secret",
	"log_level":      "log.level",
	"log_format":     "log.format",
}

// envTransformFunc maps MONGO_URI style names and MOVIEREC_SECTION__KEY names
// to koanf paths. Anything else is ignored.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if path, ok := envMappings[key]; ok {
		return path
	}
	if rest, ok := strings.CutPrefix(key, "movierec_"); ok {
		return strings.ReplaceAll(rest, "__", ".")
	}
	return ""
}
