package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ClientConfig configures the glicosaude command line app.
type ClientConfig struct {
	APIURL   string
	StateDir string
	// Token is the bearer identity; empty means anonymous.
	Token       string
	HTTPTimeout time.Duration
	LogLevel    string
}

// LoadClient reads GLICOSAUDE_* variables. Flags bound by the caller win.
func LoadClient(v *viper.Viper) (*ClientConfig, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetEnvPrefix("GLICOSAUDE")
	v.AutomaticEnv()

	v.SetDefault("API_URL", "http://localhost:8080")
	v.SetDefault("STATE_DIR", defaultStateDir())
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "warn")

	cfg := &ClientConfig{
		APIURL:      v.GetString("API_URL"),
		StateDir:    v.GetString("STATE_DIR"),
		Token:       v.GetString("TOKEN"),
		HTTPTimeout: v.GetDuration("HTTP_TIMEOUT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ClientConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api url is required")
	}
	if c.StateDir == "" {
		return fmt.Errorf("state dir is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	return nil
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "glicosaude")
	}
	return ".glicosaude"
}
