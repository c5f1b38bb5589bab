package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr)
	assert.Equal(t, "data/careerconnect.db", cfg.Database.Path)
	assert.Equal(t, 60*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, UploadDriverLocal, cfg.Uploads.Driver)
	assert.Equal(t, int64(5<<20), cfg.Uploads.MaxBytes)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.Error(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CAREER_AUTH_JWTSECRET", "s3cret")
	t.Setenv("CAREER_AUTH_TOKENTTL", "2h")
	t.Setenv("CAREER_SERVER_ADDR", ":9000")
	t.Setenv("CAREER_UPLOADS_DRIVER", "s3")
	t.Setenv("CAREER_STORAGE_BUCKET", "avatars")
	t.Setenv("CAREER_SERVER_TRUSTEDPROXIES", "10.0.0.1,10.0.0.2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "avatars", cfg.Storage.Bucket)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Server.TrustedProxies)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CAREER_AUTH_JWTSECRET=from-dotenv\nCAREER_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("CAREER_AUTH_JWTSECRET", "from-env")
	t.Setenv("CAREER_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("CAREER_LOG_LEVEL"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
auth:
  jwtsecret: file-secret
uploads:
  dir: /srv/uploads
`), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "/srv/uploads", cfg.Uploads.Dir)
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Auth.JWTSecret = "k"
	cfg.Uploads.Driver = UploadDriverLocal
	cfg.Uploads.Dir = "uploads"
	cfg.RateLimit.RPS = 1
	cfg.RateLimit.Burst = 1
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Uploads.Driver = "ftp"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Uploads.Driver = UploadDriverS3
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.RateLimit.Burst = 0
	assert.Error(t, bad.Validate())
}
