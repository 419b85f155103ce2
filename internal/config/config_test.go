package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_HOST", "localhost")
	v.Set("DB_USER", "glico")
	v.Set("DB_NAME", "glicosaude")
	v.Set("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	return fromViper(v)
}

func TestDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetAddr())
	assert.Equal(t, 5*time.Minute, cfg.Cache.ReadingsTTL)
	assert.Equal(t, 24*time.Hour, cfg.Cache.DraftTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TokenTTL())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.GetAddr())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "America/Sao_Paulo", cfg.Server.TimeZone)
	assert.Equal(t, 5, cfg.Server.AuthRateBurst)
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "short"
	assert.ErrorContains(t, cfg.Validate(), "at least 32")

	cfg = validConfig()
	cfg.Server.TimeZone = "Mars/Olympus"
	assert.ErrorContains(t, cfg.Validate(), "APP_TIMEZONE")

	cfg = validConfig()
	cfg.Database.Host = ""
	assert.ErrorContains(t, cfg.Validate(), "database host")
}

func TestGetDSN(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "host=localhost port=5432 user=glico password= dbname=glicosaude sslmode=disable", cfg.Database.GetDSN())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}

func TestLoadClient(t *testing.T) {
	t.Setenv("GLICOSAUDE_API_URL", "https://api.glicosaude.app")
	t.Setenv("GLICOSAUDE_STATE_DIR", t.TempDir())
	t.Setenv("GLICOSAUDE_TOKEN", "tok")

	cfg, err := LoadClient(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.glicosaude.app", cfg.APIURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}
