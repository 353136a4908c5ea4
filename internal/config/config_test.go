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

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "http://localhost:8080", cfg.DevProxyTarget)
}

func TestLoadYAMLThenEnvOverride(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "gym.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":9090\"\njwt_ttl: 2h\nphone_region: US\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "US", cfg.PhoneRegion)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
}

func TestLoadRejectsDefaultSecretInProd(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	chdirTemp(t)
	t.Setenv("JWT_TTL", "0s")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadSplitsCORSOrigins(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.gym.kz,https://app.gym.kz")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://admin.gym.kz", "https://app.gym.kz"}, cfg.CORSAllowedOrigins)
}
