package util

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/DaanHessen/aos-loader/internal/resolver"
)

// DefaultOptionKey is the option name the settings record is stored under.
const DefaultOptionKey = "aos_settings"

// Config holds runtime settings and flags.
type Config struct {
	DSN        string `yaml:"dsn" validate:"required_unless=Memory true"`
	Memory     bool   `yaml:"memory"`
	Migrations string `yaml:"migrations" validate:"required"`
	OptionKey  string `yaml:"option_key" validate:"required,max=191"`
	LibVersion string `yaml:"lib_version" validate:"required,semver"`
	LocalBase  string `yaml:"local_base" validate:"required"`
	Theme      string `yaml:"theme" validate:"oneof=catppuccin dracula gruvbox solarized_dark"`
}

// DefaultConfig is used before any file, env or flag is applied.
func DefaultConfig() Config {
	return Config{
		Migrations: "db/migrations",
		OptionKey:  DefaultOptionKey,
		LibVersion: resolver.DefaultLibVersion,
		LocalBase:  "/",
		Theme:      "catppuccin",
	}
}

// LoadConfig reads an optional YAML file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. getenv is os.Getenv in
// production.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("DATABASE_URL"); v != "" {
		c.DSN = v
	}
	if v := getenv("AOS_LIB_VERSION"); v != "" {
		c.LibVersion = v
	}
	if v := getenv("AOS_LOCAL_BASE"); v != "" {
		c.LocalBase = v
	}
	if v := getenv("AOS_THEME"); v != "" {
		c.Theme = v
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.Errorf("config: %s fails %q", fe.Field(), fe.Tag())
		}
		return errors.Wrap(err, "config")
	}
	return nil
}

// Assets returns the asset locations derived from the config.
func (c Config) Assets() resolver.Assets {
	return resolver.Assets{Version: c.LibVersion, LocalBase: c.LocalBase}
}
