package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"idealauncher/internal/assembler"
	"idealauncher/internal/manifest"
)

// EnvPrefix is the prefix for all environment overrides.
const EnvPrefix = "IDEALAUNCHER"

// ConfigPathEnv names an explicit config file.
const ConfigPathEnv = "IDEALAUNCHER_CONFIG_PATH"

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// listKeys are replaced wholesale when set in a config file instead of being
// merged element by element into the preset.
var listKeys = map[string]func(*Config){
	"stages":     func(c *Config) { c.Stages = nil },
	"categories": func(c *Config) { c.Categories = nil },
	"catalog":    func(c *Config) { c.Catalog = nil },
	"templates":  func(c *Config) { c.Templates = nil },
}

var validate = validator.New()

// Loader handles configuration loading using Viper.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// ConfigDir returns the platform-standard idealauncher config directory.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, "idealauncher"), nil
}

// DefaultConfigPath returns the path of the config file in [ConfigDir].
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from the first config file found plus environment
// overrides. A missing config file is not an error; the variant preset is used.
func (l *Loader) Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	l.setup()

	if path := findConfigFile(); path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return l.build()
}

// LoadFromFile loads configuration from a specific file plus environment
// overrides.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	l.setup()
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return l.build()
}

func (l *Loader) setup() {
	l.v.SetConfigType("yaml")
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	// Nested keys only reach Unmarshal when bound explicitly.
	_ = l.v.BindEnv("variant")
	_ = l.v.BindEnv("ai.enabled")
	_ = l.v.BindEnv("ai.model")
	_ = l.v.BindEnv("ai.api_key", EnvPrefix+"_AI_API_KEY", "GEMINI_API_KEY")
	_ = l.v.BindEnv("state.path")
}

// findConfigFile returns the highest-priority config file that exists.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	candidates := []string{"idealauncher.yaml"}
	if path, err := DefaultConfigPath(); err == nil {
		candidates = append([]string{path}, candidates...)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (l *Loader) build() (*Config, error) {
	cfg, err := Preset(l.v.GetString("variant"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for key, reset := range listKeys {
		if l.v.IsSet(key) {
			reset(cfg)
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.loadExternal(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadExternal replaces the catalog and templates with the contents of their
// files when paths are configured.
func (c *Config) loadExternal() error {
	if c.CatalogPath != "" {
		catalog, err := manifest.ReadFromFile(c.CatalogPath)
		if err != nil {
			return err
		}
		c.Catalog = make([]InstructionConfig, len(catalog.Entries))
		for i, e := range catalog.Entries {
			c.Catalog[i] = InstructionConfig{Category: e.Category, Text: e.Text}
		}
	}

	if c.TemplatesPath != "" {
		set, err := manifest.ReadConceptsFromFile(c.TemplatesPath)
		if err != nil {
			return err
		}
		c.Templates = make([]ConceptConfig, len(set.Concepts))
		for i, t := range set.Concepts {
			c.Templates[i] = ConceptConfig{
				ID:           t.ID,
				Title:        t.Title,
				Description:  t.Description,
				ProblemAngle: t.ProblemAngle,
				Audience:     t.Audience,
				CoreFunction: t.CoreFunction,
			}
		}
	}

	return nil
}

// Validate checks field constraints, the stage and category vocabulary and
// the header template. Errors wrap [ErrInvalidConfig].
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s' (value: %v)", e.StructNamespace(), e.Tag(), e.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if _, err := c.Blueprint(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := assembler.ValidateHeader(c.Assembly.HeaderTemplate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}
