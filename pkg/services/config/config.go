package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/spf13/viper"
)

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Config struct {
	BaseFile        string `mapstructure:"base_file"`
	CredentialsFile string `mapstructure:"credentials_file"`
	ConfigFile      string `mapstructure:"config_file"`
	Server          Server `mapstructure:"server"`
}

// Load reads the application config from path, falling back to APM_*
// environment variables and per-user defaults for anything unset. An empty
// path skips the file entirely, which keeps the tool usable with nothing
// but environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("APM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys through Unmarshal.
	for _, key := range []string{"base_file", "credentials_file", "config_file", "server.host", "server.port"} {
		_ = v.BindEnv(key)
	}

	home, _ := os.UserHomeDir()
	v.SetDefault("credentials_file", filepath.Join(home, ".aws", "credentials"))
	v.SetDefault("config_file", filepath.Join(home, ".aws", "config"))
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "5000")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.BaseFile == "" {
		return nil, domain.InvalidInputf("base_file must be configured")
	}
	return &cfg, nil
}

func (c *Config) Paths() domain.Paths {
	return domain.Paths{
		BaseFile:        c.BaseFile,
		CredentialsFile: c.CredentialsFile,
		ConfigFile:      c.ConfigFile,
	}
}
