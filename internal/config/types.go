// Package config provides configuration loading and management for idealauncher.
//
// Configuration is loaded using Viper, supporting YAML config files and environment
// variable overrides. Every deployment starts from a named variant preset
// ("compass" or "launcher") that declares the stages, lock threshold, instruction
// categories, default catalog and readiness policy; the config file then
// overrides individual settings.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [StageConfig] declares one stage of the workflow
//   - [AIConfig] contains the Gemini settings
//
// Configuration priority (highest to lowest):
//  1. Environment variables (IDEALAUNCHER_ prefix, plus GEMINI_API_KEY)
//  2. Config file specified by IDEALAUNCHER_CONFIG_PATH
//  3. User config directory (platform-standard):
//     - Linux: ~/.config/idealauncher/config.yaml
//     - macOS: ~/Library/Application Support/idealauncher/config.yaml
//     - Windows: %APPDATA%\idealauncher\config.yaml
//  4. ./idealauncher.yaml
//  5. The selected variant preset (see [Preset])
//
// A .env file in the working directory is loaded before any of the above.
package config

import "time"

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader]. Use
// [DefaultConfig] or [Preset] to get a complete preset.
type Config struct {
	// Variant names the preset the configuration starts from.
	// Valid values: "compass" (default), "launcher".
	Variant string `mapstructure:"variant" validate:"required,oneof=compass launcher"`

	// Stages declares the stages in display and assembly order.
	Stages []StageConfig `mapstructure:"stages" validate:"required,min=1,dive"`

	// Threshold is the minimum text length, in characters, before a stage
	// can be locked.
	Threshold int `mapstructure:"threshold" validate:"min=1"`

	// Categories declares the instruction categories in display order.
	Categories []CategoryConfig `mapstructure:"categories" validate:"required,min=1,dive"`

	// Catalog is the default instruction catalog. Replaced by the contents
	// of CatalogPath when that is set.
	Catalog []InstructionConfig `mapstructure:"catalog" validate:"dive"`

	// CatalogPath points to a category,text CSV file with the catalog.
	CatalogPath string `mapstructure:"catalog_path"`

	// Templates are the curated concepts a session can start from. Replaced
	// by the contents of TemplatesPath when that is set.
	Templates []ConceptConfig `mapstructure:"templates" validate:"dive"`

	// TemplatesPath points to a YAML file with curated concepts.
	TemplatesPath string `mapstructure:"templates_path"`

	// Readiness decides when instruction review may be left.
	Readiness ReadinessConfig `mapstructure:"readiness"`

	// Entry contains entry-selection settings.
	Entry EntryConfig `mapstructure:"entry"`

	// Timer contains workshop timer settings.
	Timer TimerConfig `mapstructure:"timer"`

	// Assembly contains prompt assembly settings.
	Assembly AssemblyConfig `mapstructure:"assembly"`

	// AI contains the optional Gemini integration settings.
	AI AIConfig `mapstructure:"ai"`

	// State contains persistence settings.
	State StateConfig `mapstructure:"state"`

	// Output contains terminal output formatting configuration.
	Output OutputConfig `mapstructure:"output"`
}

// StageConfig declares one stage.
type StageConfig struct {
	// ID is the stable stage key (e.g., "why"). Stored in the state file.
	ID string `mapstructure:"id" validate:"required"`

	// Label is the heading shown to the user and used in the prompt.
	Label string `mapstructure:"label" validate:"required"`

	// Prompts are guiding questions; the next one appears as the text grows.
	Prompts []string `mapstructure:"prompts"`
}

// CategoryConfig declares one instruction category.
type CategoryConfig struct {
	ID string `mapstructure:"id" validate:"required"`

	// Heading is the section title in the assembled prompt.
	Heading string `mapstructure:"heading" validate:"required"`

	// Placeholder is the bullet emitted when nothing is approved.
	Placeholder string `mapstructure:"placeholder" validate:"required"`
}

// InstructionConfig is one default catalog entry.
type InstructionConfig struct {
	Category string `mapstructure:"category" validate:"required"`
	Text     string `mapstructure:"text" validate:"required"`
}

// ConceptConfig is one curated concept.
type ConceptConfig struct {
	ID           string `mapstructure:"id" validate:"required"`
	Title        string `mapstructure:"title" validate:"required"`
	Description  string `mapstructure:"description"`
	ProblemAngle string `mapstructure:"problem_angle"`
	Audience     string `mapstructure:"audience"`
	CoreFunction string `mapstructure:"core_function"`
}

// ReadinessConfig decides when instruction review is complete.
type ReadinessConfig struct {
	// Policy is "per-category" (at least one approved per category) or
	// "min-total" (at least MinApproved approved overall).
	Policy string `mapstructure:"policy" validate:"required,oneof=per-category min-total"`

	// MinApproved is used by the "min-total" policy.
	MinApproved int `mapstructure:"min_approved" validate:"min=0"`
}

// TimerConfig contains workshop timer settings.
type TimerConfig struct {
	// StageDuration is the time planned per stage. The status command nudges
	// the user on each time it passes. Zero turns nudges off.
	// Default: 20s
	StageDuration time.Duration `mapstructure:"stage_duration" validate:"min=0"`
}

// EntryConfig contains entry-selection settings.
type EntryConfig struct {
	// MinSparks is the minimum number of sparks a spark selection needs.
	MinSparks int `mapstructure:"min_sparks" validate:"min=0"`
}

// AssemblyConfig contains prompt assembly settings.
type AssemblyConfig struct {
	// DefaultName replaces a blank display name in the prompt.
	DefaultName string `mapstructure:"default_name"`

	// HeaderTemplate is a Go template for the first prompt line.
	// Fields: {{.Name}}, {{.Concept}}, {{.Sparks}}.
	HeaderTemplate string `mapstructure:"header_template"`

	// ClosingDirective is the fixed last paragraph naming the build stack.
	ClosingDirective string `mapstructure:"closing_directive"`

	// RequireName blocks final assembly until a display name is set.
	RequireName bool `mapstructure:"require_name"`

	// RequireConfirmation blocks copying until the prompt is confirmed.
	RequireConfirmation bool `mapstructure:"require_confirmation"`
}

// AIConfig contains the Gemini settings.
//
// Everything AI-related is optional: without a key every feature falls back
// to its local behavior.
type AIConfig struct {
	// Enabled turns remote suggestions and prompt enhancement on.
	Enabled bool `mapstructure:"enabled"`

	// Model is the Gemini model name.
	// Default: "gemini-2.0-flash"
	Model string `mapstructure:"model" validate:"required"`

	// APIKey is the Gemini API key. Usually provided via GEMINI_API_KEY.
	APIKey string `mapstructure:"api_key"`

	// Timeout bounds each remote call.
	// Default: 15s
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`

	// Temperature is used for prompt enhancement.
	Temperature float32 `mapstructure:"temperature" validate:"min=0,max=2"`

	// BaseURL replaces the Gemini API endpoint, e.g. for a proxy.
	// Empty uses the SDK default.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// StateConfig contains persistence settings.
type StateConfig struct {
	// Path is the state file. Empty means <config dir>/state.json.
	// Can be overridden with IDEALAUNCHER_STATE_PATH environment variable.
	Path string `mapstructure:"path"`
}

// OutputConfig contains terminal output formatting configuration.
type OutputConfig struct {
	// Markdown contains markdown rendering configuration.
	Markdown MarkdownConfig `mapstructure:"markdown"`
}

// MarkdownConfig contains configuration for markdown rendering in terminal output.
//
// When enabled, the prompt preview and concept descriptions are rendered with
// proper formatting: bold, headers, lists, etc.
type MarkdownConfig struct {
	// Enabled controls whether markdown rendering is active.
	// Default: true
	Enabled bool `mapstructure:"enabled"`

	// Style is the glamour theme to use: "dark", "light", "dracula", "tokyo-night".
	// Avoid "auto" as it can cause detection delays on some terminals.
	// Default: "dark"
	Style string `mapstructure:"style"`

	// WordWrap is the column width for text wrapping.
	// Default: 100
	WordWrap int `mapstructure:"word_wrap"`

	// Emoji enables emoji shortcode rendering (e.g., :rocket: -> 🚀).
	// Default: true
	Emoji bool `mapstructure:"emoji"`
}

// DefaultConfig returns a new [Config] with the default "compass" preset.
//
// The defaults work out of the box without any configuration file.
func DefaultConfig() *Config {
	cfg, _ := Preset(VariantCompass)
	return cfg
}
