package cli

// This file loads the CLI configuration from .env files, an optional
// errcatalog.yaml and ERRCATALOG_* environment variables.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration defaults.
const (
	DefaultFormat        = "json"
	DefaultNamespace     = "default"
	DefaultConfigMapName = "error-catalog"

	envPrefix  = "ERRCATALOG"
	envFileVar = "ERRCATALOG_ENV_FILE"
	configName = "errcatalog"
)

// Config holds the settings shared by the catalog commands.
type Config struct {
	// Format is the default export format.
	Format string `mapstructure:"format"`
	// Output is the default export destination; empty means stdout.
	Output string `mapstructure:"output"`
	// DocsBaseURL fills missing documentation links on export.
	DocsBaseURL string `mapstructure:"docs_base_url"`
	// Namespace and ConfigMapName locate the published ConfigMap.
	Namespace     string `mapstructure:"namespace"`
	ConfigMapName string `mapstructure:"configmap_name"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.ConfigMapName == "" {
		c.ConfigMapName = DefaultConfigMapName
	}
}

// DefaultCLIConfig is the configuration used by commands built without an
// explicit one. LoadConfig results are copied into it by the root command.
var DefaultCLIConfig = &Config{}

func init() {
	DefaultCLIConfig.ApplyDefaults()
}

// LoadConfig reads the configuration. path selects a config file; when
// empty, errcatalog.yaml is searched in the working directory and in
// $HOME/.config/errcatalog and may be absent.
func LoadConfig(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"format", "output", "docs_base_url", "namespace", "configmap_name"} {
		v.SetDefault(key, "")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, wrapWithSentinelAndContext(ErrLoadConfigFailed, err,
				"failed to read config file", map[string]any{"path": path})
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, wrapWithSentinel(ErrLoadConfigFailed, err, "failed to decode configuration")
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func loadEnvFile() error {
	if envFile := os.Getenv(envFileVar); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return wrapWithSentinelAndContext(ErrLoadConfigFailed, err,
				"failed to load env file", map[string]any{"path": envFile})
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return wrapWithSentinelAndContext(ErrLoadConfigFailed, err,
			"failed to load .env", map[string]any{"path": ".env"})
	}
	return nil
}
