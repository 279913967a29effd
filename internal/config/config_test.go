package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Corpus.TaggedMovies != 9734 || cfg.Corpus.Actors != 55741 || cfg.Corpus.GenreMovies != 34208 {
		t.Errorf("unexpected corpus defaults: %+v", cfg.Corpus)
	}
	if cfg.Scan.ProgressInterval != 10000 {
		t.Errorf("ProgressInterval = %d", cfg.Scan.ProgressInterval)
	}

	p := cfg.ScoringParams()
	if p.TagBase != 2 || p.ActorBase != 10 || p.MentionBase != 5 {
		t.Errorf("ScoringParams() = %+v", p)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MOVIEREC_CORPUS__ACTORS", "1200")
	t.Setenv("MOVIEREC_SCAN__TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("Mongo.URI = %q", cfg.Mongo.URI)
	}
	if cfg.Corpus.Actors != 1200 {
		t.Errorf("Corpus.Actors = %d, want 1200", cfg.Corpus.Actors)
	}
	if cfg.Scan.Timeout != 30*time.Second {
		t.Errorf("Scan.Timeout = %v", cfg.Scan.Timeout)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("corpus:\n  version: snapshot-2\n  tagged_movies: 120\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Corpus.Version != "snapshot-2" || cfg.Corpus.TaggedMovies != 120 {
		t.Errorf("Corpus = %+v", cfg.Corpus)
	}
	if cfg.Corpus.Actors != 55741 {
		t.Errorf("defaults not kept under file layer: %+v", cfg.Corpus)
	}
}

func TestValidate_RejectsBadBase(t *testing.T) {
	cfg := defaultConfig()
	cfg.Corpus.ActorBase = 1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted log base 1")
	}

	cfg = defaultConfig()
	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted unknown log level")
	}
}

func TestCheckAdminSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		level   string
		wantErr error
	}{
		{"placeholder in production", PlaceholderJWTSecret, "info", ErrPlaceholderSecret},
		{"placeholder while debugging", PlaceholderJWTSecret, "debug", nil},
		{"real secret", "0c9f1e7d", "info", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.HTTP.JWTSecret = tt.secret
			cfg.Log.Level = tt.level
			if err := cfg.CheckAdminSecret(); !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckAdminSecret() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"MONGO_DB":                       "mongo.database",
		"MOVIEREC_CORPUS__TAGGED_MOVIES": "corpus.tagged_movies",
		"PATH":                           "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
