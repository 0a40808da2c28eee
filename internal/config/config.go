package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	ClassifierMacho = "macho"
	ClassifierFile  = "file"
)

type Config struct {
	LipoPath   string `mapstructure:"lipo_path"`
	FilePath   string `mapstructure:"file_path"`
	Classifier string `mapstructure:"classifier"`
}

var Default = Config{
	LipoPath:   "lipo",
	FilePath:   "file",
	Classifier: ClassifierMacho,
}

// Load reads unibin.yaml from the working directory or ~/.unibin, or the
// explicit file when path is set. UNIBIN_* environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("unibin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".unibin"))
		}
	}

	v.SetDefault("lipo_path", Default.LipoPath)
	v.SetDefault("file_path", Default.FilePath)
	v.SetDefault("classifier", Default.Classifier)

	v.SetEnvPrefix("UNIBIN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := errors.AsType[viper.ConfigFileNotFoundError](err); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Classifier {
	case ClassifierMacho, ClassifierFile:
	default:
		return fmt.Errorf("unknown classifier %q (want %q or %q)", c.Classifier, ClassifierMacho, ClassifierFile)
	}

	if c.LipoPath == "" {
		return errors.New("lipo_path must not be empty")
	}
	if c.Classifier == ClassifierFile && c.FilePath == "" {
		return errors.New("file_path must not be empty when classifier is file")
	}

	return nil
}
