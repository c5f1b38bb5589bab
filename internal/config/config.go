package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	UploadDriverLocal = "local"
	UploadDriverS3    = "s3"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
		Mode string
		// TrustedProxies lists peers whose X-Forwarded-For is believed.
		TrustedProxies []string
	}
	Log struct {
		Level string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
	Uploads struct {
		Driver    string
		Dir       string
		PublicURL string
		MaxBytes  int64
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
		PublicURL string
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and optional config files.
// Variables already present in the environment win over .env entries.
func Load(paths ...string) (Config, error) {
	_ = godotenv.Load() // optional file

	v := viper.New()
	v.SetEnvPrefix("CAREER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.trustedproxies", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("database.path", "data/careerconnect.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttl", "1440h")
	v.SetDefault("auth.bcryptcost", 10)
	v.SetDefault("ratelimit.rps", 1.0)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("uploads.driver", UploadDriverLocal)
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.publicurl", "http://localhost:5000/uploads")
	v.SetDefault("uploads.maxbytes", 5<<20)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "uploads")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.publicurl", "")
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that have no safe default.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth jwt secret is required (CAREER_AUTH_JWTSECRET)")
	}
	switch c.Uploads.Driver {
	case UploadDriverLocal:
		if c.Uploads.Dir == "" {
			return errors.New("uploads dir is required for the local driver")
		}
	case UploadDriverS3:
		if c.Storage.Bucket == "" {
			return errors.New("storage bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown uploads driver %q", c.Uploads.Driver)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate limit rps and burst must be positive")
	}
	return nil
}
