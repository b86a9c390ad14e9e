// internal/config/config.go
//
// This package handles configuration and the .crumbline directory
// structure. Every machine that runs crumbline gets a .crumbline/
// folder created under the user's chosen base directory.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// CrumblineDir is the name of the directory we create.
	CrumblineDir = ".crumbline"

	defaultAPIBaseURL     = "http://localhost:8080/api"
	defaultRequestTimeout = 15 * time.Second

	// EnvAPIBaseURL overrides server.base_url; loaded from the
	// environment or a .env file in the base directory.
	EnvAPIBaseURL = "CRUMBLINE_API_URL"
)

const defaultConfigYAML = `# crumbline client configuration
version: 1

server:
  base_url: http://localhost:8080/api
  timeout_seconds: 15
  # Advisory Cache-Control max-age attached to GET requests. The client
  # does not cache responses itself.
  cache_max_age_seconds: 300

pages:
  catalog: 6
  orders: 10
  users: 10

ui:
  theme: light
`

// ServerConfig holds the remote API settings.
type ServerConfig struct {
	BaseURL            string `yaml:"base_url"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	CacheMaxAgeSeconds int    `yaml:"cache_max_age_seconds"`
}

// PageConfig fixes the page size per dashboard context.
type PageConfig struct {
	Catalog int `yaml:"catalog"`
	Orders  int `yaml:"orders"`
	Users   int `yaml:"users"`
}

// UIConfig captures the first-run presentation defaults. The theme
// saved from the Settings section lands in the state dir, not here.
type UIConfig struct {
	Theme string `yaml:"theme"`
}

// FileConfig models .crumbline/config.yaml.
type FileConfig struct {
	Version int          `yaml:"version"`
	Server  ServerConfig `yaml:"server"`
	Pages   PageConfig   `yaml:"pages"`
	UI      UIConfig     `yaml:"ui"`
}

// Config holds the runtime configuration for crumbline.
type Config struct {
	// BaseDir is the directory the user ran crumbline from.
	BaseDir string

	// CrumblineDir is BaseDir/.crumbline.
	CrumblineDir string

	File FileConfig
}

// InitCrumblineDir creates the .crumbline directory structure.
// Called once on startup, before the TUI launches.
//
// Structure created:
// .crumbline/
// ├── logs/     <- session journal
// ├── state/    <- persisted session + preferences
// └── exports/  <- XLSX inventory exports
func InitCrumblineDir(baseDir string) error {
	root := filepath.Join(baseDir, CrumblineDir)
	dirs := []string{
		filepath.Join(root, "logs"),
		filepath.Join(root, "state"),
		filepath.Join(root, "exports"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return ensureConfigFile(filepath.Join(root, "config.yaml"))
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0644)
}

// New loads configuration for the given base directory. A .env file in
// the base directory is honored, and CRUMBLINE_API_URL overrides the
// YAML base URL so deployments can point the client elsewhere without
// editing config.
func New(baseDir string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(baseDir, ".env"))

	cfg := &Config{
		BaseDir:      baseDir,
		CrumblineDir: filepath.Join(baseDir, CrumblineDir),
		File:         defaultFileConfig(),
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if url := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); url != "" {
		cfg.File.Server.BaseURL = url
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.CrumblineDir, "logs")
}

// StateDir returns the path to the state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.CrumblineDir, "state")
}

// ExportsDir returns the path XLSX exports are written to.
func (c *Config) ExportsDir() string {
	return filepath.Join(c.CrumblineDir, "exports")
}

// ConfigPath returns the on-disk location of the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.CrumblineDir, "config.yaml")
}

// APIBaseURL returns the resolved API base URL without a trailing slash.
func (c *Config) APIBaseURL() string {
	return strings.TrimRight(c.File.Server.BaseURL, "/")
}

// RequestTimeout bounds each HTTP call.
func (c *Config) RequestTimeout() time.Duration {
	if c.File.Server.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.File.Server.TimeoutSeconds) * time.Second
}

// CacheMaxAge is the advisory TTL attached to GET requests.
func (c *Config) CacheMaxAge() time.Duration {
	return time.Duration(c.File.Server.CacheMaxAgeSeconds) * time.Second
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.File = parsed
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		Server: ServerConfig{
			BaseURL:            defaultAPIBaseURL,
			TimeoutSeconds:     15,
			CacheMaxAgeSeconds: 300,
		},
		Pages: PageConfig{Catalog: 6, Orders: 10, Users: 10},
		UI:    UIConfig{Theme: "light"},
	}
}

func (fc *FileConfig) applyDefaults() {
	def := defaultFileConfig()
	if fc.Version == 0 {
		fc.Version = def.Version
	}
	if strings.TrimSpace(fc.Server.BaseURL) == "" {
		fc.Server.BaseURL = def.Server.BaseURL
	}
	if fc.Server.TimeoutSeconds <= 0 {
		fc.Server.TimeoutSeconds = def.Server.TimeoutSeconds
	}
	if fc.Server.CacheMaxAgeSeconds < 0 {
		fc.Server.CacheMaxAgeSeconds = def.Server.CacheMaxAgeSeconds
	}
	if fc.Pages.Catalog <= 0 {
		fc.Pages.Catalog = def.Pages.Catalog
	}
	if fc.Pages.Orders <= 0 {
		fc.Pages.Orders = def.Pages.Orders
	}
	if fc.Pages.Users <= 0 {
		fc.Pages.Users = def.Pages.Users
	}
	if strings.TrimSpace(fc.UI.Theme) == "" {
		fc.UI.Theme = def.UI.Theme
	}
}

func (fc FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	theme := strings.ToLower(strings.TrimSpace(fc.UI.Theme))
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("ui.theme must be 'light' or 'dark'")
	}
	return nil
}
