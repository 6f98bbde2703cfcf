package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	StorePostgres = "postgres"
	StoreFile     = "file"

	SessionMemory   = "memory"
	SessionPostgres = "postgres"
	SessionRedis    = "redis"

	MediaNone  = "none"
	MediaLocal = "local"
	MediaS3    = "s3"
)

// DefaultDonateURL is the outbound donation link shown in the navigation.
const DefaultDonateURL = "https://www.paypal.com/ncp/payment/JBDVRK4T8GLPJ"

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres backend")
	ErrMissingDataDir     = errors.New("DATA_DIR is required for the file backend")
	ErrMissingRedisAddr   = errors.New("REDIS_ADDR is required for the redis session backend")
	ErrMissingBucket      = errors.New("S3_BUCKET is required for the s3 media backend")
	ErrMissingMediaDir    = errors.New("MEDIA_DIR is required for the local media backend")
)

type Config struct {
	Port           string        `yaml:"port"`
	DatabaseURL    string        `yaml:"database_url"`
	StoreBackend   string        `yaml:"store_backend"`
	DataDir        string        `yaml:"data_dir"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	AdminUsername  string        `yaml:"admin_username"`
	DonateURL      string        `yaml:"donate_url"`
	BcryptCost     int           `yaml:"bcrypt_cost"`
	LoginPerMinute int           `yaml:"login_rate_per_minute"`
	Session        SessionConfig `yaml:"session"`
	Media          MediaConfig   `yaml:"media"`
}

type SessionConfig struct {
	Backend       string        `yaml:"backend"`
	TTL           time.Duration `yaml:"ttl"`
	CookieSecure  bool          `yaml:"cookie_secure"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

type MediaConfig struct {
	Backend        string `yaml:"backend"`
	Dir            string `yaml:"dir"`
	PublicBaseURL  string `yaml:"public_base_url"`
	MaxDimension   int    `yaml:"max_dimension"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	S3Region       string `yaml:"s3_region"`
	S3Bucket       string `yaml:"s3_bucket"`
	S3Endpoint     string `yaml:"s3_endpoint"`
	S3AccessKey    string `yaml:"s3_access_key"`
	S3SecretKey    string `yaml:"s3_secret_key"`
	S3PathStyle    bool   `yaml:"s3_path_style"`
}

func Default() Config {
	return Config{
		Port:           "5050",
		StoreBackend:   StorePostgres,
		DataDir:        "./data",
		AllowedOrigins: []string{"http://localhost:5173"},
		AdminUsername:  "admin",
		DonateURL:      DefaultDonateURL,
		BcryptCost:     12,
		LoginPerMinute: 10,
		Session: SessionConfig{
			Backend: SessionMemory,
			TTL:     6 * time.Hour,
		},
		Media: MediaConfig{
			Backend:        MediaNone,
			Dir:            "./media",
			MaxDimension:   1200,
			MaxUploadBytes: 10 << 20,
			S3Region:       "us-east-1",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and finally environment variables, in increasing priority.
//
// Environment variables:
//   - PORT, DATABASE_URL, STORE_BACKEND (postgres|file), DATA_DIR
//   - ALLOWED_ORIGINS (comma separated), ADMIN_USERNAME, DONATE_URL
//   - BCRYPT_COST, LOGIN_RATE_PER_MINUTE
//   - SESSION_BACKEND (memory|postgres|redis), SESSION_TTL, COOKIE_SECURE
//   - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
//   - MEDIA_BACKEND (none|local|s3), MEDIA_DIR, MEDIA_PUBLIC_BASE_URL,
//     MEDIA_MAX_DIMENSION, MEDIA_MAX_UPLOAD_BYTES
//   - S3_REGION, S3_BUCKET, S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY, S3_PATH_STYLE
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.StoreBackend, "STORE_BACKEND")
	setString(&cfg.DataDir, "DATA_DIR")
	setString(&cfg.AdminUsername, "ADMIN_USERNAME")
	setString(&cfg.DonateURL, "DONATE_URL")
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	setString(&cfg.Session.Backend, "SESSION_BACKEND")
	setString(&cfg.Session.RedisAddr, "REDIS_ADDR")
	setString(&cfg.Session.RedisPassword, "REDIS_PASSWORD")

	setString(&cfg.Media.Backend, "MEDIA_BACKEND")
	setString(&cfg.Media.Dir, "MEDIA_DIR")
	setString(&cfg.Media.PublicBaseURL, "MEDIA_PUBLIC_BASE_URL")
	setString(&cfg.Media.S3Region, "S3_REGION")
	setString(&cfg.Media.S3Bucket, "S3_BUCKET")
	setString(&cfg.Media.S3Endpoint, "S3_ENDPOINT")
	setString(&cfg.Media.S3AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Media.S3SecretKey, "S3_SECRET_KEY")

	ints := []struct {
		dst *int
		key string
	}{
		{&cfg.BcryptCost, "BCRYPT_COST"},
		{&cfg.LoginPerMinute, "LOGIN_RATE_PER_MINUTE"},
		{&cfg.Session.RedisDB, "REDIS_DB"},
		{&cfg.Media.MaxDimension, "MEDIA_MAX_DIMENSION"},
	}
	for _, i := range ints {
		if err := setInt(i.dst, i.key); err != nil {
			return err
		}
	}

	if v := strings.TrimSpace(os.Getenv("MEDIA_MAX_UPLOAD_BYTES")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MEDIA_MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.Media.MaxUploadBytes = n
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		cfg.Session.TTL = d
	}
	if err := setBool(&cfg.Session.CookieSecure, "COOKIE_SECURE"); err != nil {
		return err
	}
	return setBool(&cfg.Media.S3PathStyle, "S3_PATH_STYLE")
}

// Validate checks that every selected backend has what it needs.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	case StoreFile:
		if c.DataDir == "" {
			return ErrMissingDataDir
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.Session.Backend {
	case SessionMemory:
	case SessionPostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	case SessionRedis:
		if c.Session.RedisAddr == "" {
			return ErrMissingRedisAddr
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}

	switch c.Media.Backend {
	case MediaNone:
	case MediaLocal:
		if c.Media.Dir == "" {
			return ErrMissingMediaDir
		}
	case MediaS3:
		if c.Media.S3Bucket == "" {
			return ErrMissingBucket
		}
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q", c.Media.Backend)
	}

	if c.Media.MaxDimension <= 0 {
		return errors.New("MEDIA_MAX_DIMENSION must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
