// Package gitload provides process-wide configuration for request execution.
package gitload

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config carries the read-only settings every request needs. It is supplied
// once and shared safely across concurrent requests; nothing in the core
// mutates it after construction.
type Config struct {
	// BasePath is the root under which per-user workspaces are created.
	BasePath string `mapstructure:"base_path" yaml:"base_path"`

	// SSH configures the key-based transport used for ssh remotes.
	SSH SSHConfig `mapstructure:"ssh" yaml:"ssh"`

	// HTTP configures the credential-based transport used for http(s) remotes.
	HTTP HTTPConfig `mapstructure:"http" yaml:"http"`
}

// SSHConfig holds the key-based transport settings.
type SSHConfig struct {
	PrivateKeyPath string `mapstructure:"private_key_path" yaml:"private_key_path"`
}

// HTTPConfig holds the credential-based transport settings.
type HTTPConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// DefaultBasePath is where workspaces land when no base path is configured.
func DefaultBasePath() string {
	return filepath.Join(xdg.CacheHome, "gitload")
}

// LoadConfig reads configuration from a yaml file, GITLOAD_* environment
// variables and built-in defaults, in that order of precedence. When path is
// empty the file is searched for as gitload.yaml in the XDG config directory
// and the current directory, and a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("base_path", DefaultBasePath())
	v.SetDefault("ssh.private_key_path", "")
	v.SetDefault("http.username", "")
	v.SetDefault("http.password", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gitload")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "gitload"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GITLOAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
