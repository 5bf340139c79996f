package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Book     BookConfig     `yaml:"book"`
	Features FeaturesConfig `yaml:"features"`
	Stubs    StubsConfig    `yaml:"stubs"`
	Watch    WatchConfig    `yaml:"watch"`
}

// BookConfig describes the layout of the unstable book inside the source tree
// and the destination.
type BookConfig struct {
	// SourceDir is the book source directory relative to the source tree root.
	SourceDir string `yaml:"source_dir,omitempty"`
	// LangFeaturesDir holds language feature sections, relative to SourceDir.
	LangFeaturesDir string `yaml:"lang_features_dir,omitempty"`
	// LibFeaturesDir holds library feature sections, relative to SourceDir.
	LibFeaturesDir string `yaml:"lib_features_dir,omitempty"`
	// CompilerFlagsDir holds compiler flag sections, relative to SourceDir.
	CompilerFlagsDir string `yaml:"compiler_flags_dir,omitempty"`
}

// FeaturesConfig describes where feature declarations live in the source tree.
type FeaturesConfig struct {
	// GateFile is the language feature-gate declarations file, relative to the root.
	GateFile string `yaml:"gate_file,omitempty"`
	// LibRoots are directories scanned for library stability attributes.
	LibRoots []string `yaml:"lib_roots,omitempty"`
	// SourceExt is the extension of source files scanned for attributes.
	SourceExt string `yaml:"source_ext,omitempty"`
}

// StubsConfig controls generated stub pages.
type StubsConfig struct {
	// IssueURLFormat is an fmt pattern producing a tracking-issue URL from its number.
	IssueURLFormat string `yaml:"issue_url_format,omitempty"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is how long to wait after a file event before rebuilding, e.g. "2s".
	Debounce string `yaml:"debounce,omitempty"`
	// ResyncInterval triggers a periodic full rebuild when set, e.g. "1h". Empty disables it.
	ResyncInterval string `yaml:"resync_interval,omitempty"`
	// MetricsAddr serves /metrics and /healthz when set, e.g. ":9190". Empty disables it.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// Default returns the configuration matching the conventional source tree layout.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from the specified file. A missing file is not an
// error: the defaults describe the conventional tree layout, so a config file
// is only needed to override them.
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present so ${VAR} expansion below can see them.
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Book.SourceDir == "" {
		c.Book.SourceDir = "doc/unstable-book/src"
	}
	if c.Book.LangFeaturesDir == "" {
		c.Book.LangFeaturesDir = "language-features"
	}
	if c.Book.LibFeaturesDir == "" {
		c.Book.LibFeaturesDir = "library-features"
	}
	if c.Book.CompilerFlagsDir == "" {
		c.Book.CompilerFlagsDir = "compiler-flags"
	}
	if c.Features.GateFile == "" {
		c.Features.GateFile = "libsyntax/feature_gate.rs"
	}
	if len(c.Features.LibRoots) == 0 {
		c.Features.LibRoots = []string{"libstd", "libcore", "liballoc"}
	}
	if c.Features.SourceExt == "" {
		c.Features.SourceExt = ".rs"
	}
	if c.Stubs.IssueURLFormat == "" {
		c.Stubs.IssueURLFormat = "https://github.com/rust-lang/rust/issues/%d"
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "2s"
	}
}

// DebounceDuration parses Watch.Debounce, falling back to 2s on bad input.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// ResyncDuration parses Watch.ResyncInterval; zero means disabled.
func (c *Config) ResyncDuration() time.Duration {
	if c.Watch.ResyncInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Watch.ResyncInterval)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Default()
	example.Watch.MetricsAddr = ":9190"

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// loadEnvFiles loads environment variables from .env/.env.local files.
// It attempts each supported filename in order and stops at the first one found.
// Existing environment variables always win over file values.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			return
		}
	}
}
