package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Mongo   MongoConfig   `yaml:"mongo"`
	NATS    NATSConfig    `yaml:"nats"`
	MinIO   MinIOConfig   `yaml:"minio"`
	Quotes  QuotesConfig  `yaml:"quotes"`
	Render  RenderConfig  `yaml:"render"`
	Spotify SpotifyConfig `yaml:"spotify"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
	// PublicBaseURL prefixes object keys when building media URLs
	// returned to clients (profile pictures, word clouds, renders).
	PublicBaseURL string `yaml:"public_base_url"`
}

type MongoConfig struct {
	URI      string        `yaml:"uri"`
	Database string        `yaml:"database"`
	Users    string        `yaml:"users"`
	Doctors  string        `yaml:"doctors"`
	Musics   string        `yaml:"musics"`
	Timeout  time.Duration `yaml:"timeout"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// QuotesConfig points at the external quote API and caps the request rate
// we send it.
type QuotesConfig struct {
	BaseURL        string  `yaml:"base_url"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
}

// RenderConfig points at the external services the glue endpoints call:
// the deepfake render service and the word-cloud renderer.
type RenderConfig struct {
	DeepfakeURL  string `yaml:"deepfake_url"`
	WordCloudURL string `yaml:"wordcloud_url"`
}

// SpotifyConfig carries the client credentials catalogctl uses for
// metadata enrichment.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from a YAML file and applies environment variable
// overrides. A .env file in the working directory is honoured first,
// matching the dotenv-driven deployments this service replaced.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "emoup"
	}
	if cfg.Mongo.Users == "" {
		cfg.Mongo.Users = "users"
	}
	if cfg.Mongo.Doctors == "" {
		cfg.Mongo.Doctors = "doctors"
	}
	if cfg.Mongo.Musics == "" {
		cfg.Mongo.Musics = "musics"
	}
	if cfg.Mongo.Timeout == 0 {
		cfg.Mongo.Timeout = 10 * time.Second
	}
	if cfg.Quotes.RequestsPerSec == 0 {
		cfg.Quotes.RequestsPerSec = 1
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EMOUP_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("EMOUP_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("EMOUP_PUBLIC_BASE_URL"); v != "" {
		cfg.Server.PublicBaseURL = v
	}
	if v := os.Getenv("EMOUP_MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("EMOUP_MONGO_DATABASE"); v != "" {
		cfg.Mongo.Database = v
	}
	if v := os.Getenv("EMOUP_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("EMOUP_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("EMOUP_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("EMOUP_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("EMOUP_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
	if v := os.Getenv("EMOUP_QUOTES_BASE_URL"); v != "" {
		cfg.Quotes.BaseURL = v
	}
	if v := os.Getenv("EMOUP_DEEPFAKE_URL"); v != "" {
		cfg.Render.DeepfakeURL = v
	}
	if v := os.Getenv("EMOUP_WORDCLOUD_URL"); v != "" {
		cfg.Render.WordCloudURL = v
	}
	if v := os.Getenv("EMOUP_SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv("EMOUP_SPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.Spotify.ClientSecret = v
	}
}
