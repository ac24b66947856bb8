package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "iggallery/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything a gallery run needs. It is built once at startup
// and handed to each component.
type Config struct {
	// Remote Graph API settings and credentials
	Graph GraphConfig `yaml:"graph" json:"graph"`

	// Output file locations
	Output OutputConfig `yaml:"output" json:"output"`

	// Rendering options
	Render RenderConfig `yaml:"render" json:"render"`

	// Static page shell
	Site SiteConfig `yaml:"site" json:"site"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// GraphConfig holds Graph API settings
type GraphConfig struct {
	Host        string        `yaml:"host" json:"host" env:"IG_GRAPH_HOST" env-description:"Graph API host"`
	APIVersion  string        `yaml:"api_version" json:"api_version" env:"GRAPH_API_VERSION" env-description:"Graph API version path segment"`
	AccountID   string        `yaml:"account_id" json:"account_id" env:"IG_USER_ID" env-description:"Instagram account (user) ID (required)"`
	AccessToken string        `yaml:"access_token" json:"access_token" env:"IG_ACCESS_TOKEN" env-description:"Graph API access token (required unless stored with 'iggallery token set')"`
	Limit       int           `yaml:"limit" json:"limit" env:"IG_LIMIT" env-description:"Maximum number of media items to fetch"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" env:"IG_TIMEOUT" env-description:"HTTP request timeout"`
}

// OutputConfig holds output file paths
type OutputConfig struct {
	JSONPath string `yaml:"json_path" json:"json_path" env:"IG_OUTPUT_JSON" env-description:"Path of the JSON posts file"`
	HTMLPath string `yaml:"html_path" json:"html_path" env:"IG_OUTPUT_HTML" env-description:"Path of the generated HTML page"`
}

// RenderConfig holds rendering options
type RenderConfig struct {
	CaptionLength int `yaml:"caption_length" json:"caption_length" env:"IG_CAPTION_LENGTH" env-description:"Maximum caption length on a card"`
}

// SiteConfig holds the static page shell
type SiteConfig struct {
	Title       string    `yaml:"title" json:"title" env:"IG_SITE_TITLE" env-description:"Site title"`
	HeaderImage string    `yaml:"header_image" json:"header_image" env:"IG_HEADER_IMAGE" env-description:"Hero header image URL"`
	Heading     string    `yaml:"heading" json:"heading"`
	LinkLabel   string    `yaml:"link_label" json:"link_label"`
	NavLinks    []NavLink `yaml:"nav_links" json:"nav_links"`
}

// NavLink is one entry of the navigation bar
type NavLink struct {
	Label    string `yaml:"label" json:"label"`
	URL      string `yaml:"url" json:"url"`
	External bool   `yaml:"external" json:"external"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" env:"IGGALLERY_LOG_LEVEL" env-description:"Log level (debug, info, warn, error)"`
	File  string `yaml:"file" json:"file" env:"IGGALLERY_LOG_FILE" env-description:"Optional log file"`
}

const (
	DefaultGraphHost     = "graph.instagram.com"
	DefaultAPIVersion    = "v24.0"
	DefaultLimit         = 5
	DefaultTimeout       = 30 * time.Second
	DefaultCaptionLength = 220
	DefaultJSONPath      = "ig/posts.json"
	DefaultHTMLPath      = "index.html"
)

// DefaultConfig returns a Config instance with the stock gallery settings
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			Host:       DefaultGraphHost,
			APIVersion: DefaultAPIVersion,
			Limit:      DefaultLimit,
			Timeout:    DefaultTimeout,
		},
		Output: OutputConfig{
			JSONPath: DefaultJSONPath,
			HTMLPath: DefaultHTMLPath,
		},
		Render: RenderConfig{
			CaptionLength: DefaultCaptionLength,
		},
		Site: SiteConfig{
			Title:       "Aurora Digital",
			HeaderImage: "assets/header.jpg",
			Heading:     "Latest Instagram Posts",
			LinkLabel:   "Open on Instagram ↗",
			NavLinks: []NavLink{
				{Label: "Home", URL: "/"},
				{Label: "Instagram", URL: "https://www.instagram.com/", External: true},
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv overrides fields that have their environment variable set.
// Unset variables leave the current value alone.
func (c *Config) LoadFromEnv() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// EnvDescription lists the environment variables the configuration reads
func (c *Config) EnvDescription() (string, error) {
	header := "Environment variables:"
	return cleanenv.GetDescription(c, &header)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for a config file in the standard locations
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	locations := []string{
		".iggallery.yaml",
		".iggallery.yml",
		filepath.Join(home, ".config", "iggallery", "config.yaml"),
		filepath.Join(home, ".config", "iggallery", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks the non-credential settings
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Graph.Host) == "" {
		errs = append(errs, errors.New("graph host is required"))
	}
	if strings.TrimSpace(c.Graph.APIVersion) == "" {
		errs = append(errs, errors.New("graph API version is required"))
	}
	if c.Graph.Limit <= 0 {
		errs = append(errs, errors.New("limit must be positive"))
	}
	if c.Graph.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}

	if c.Output.JSONPath == "" {
		errs = append(errs, errors.New("JSON output path is required"))
	}
	if c.Output.HTMLPath == "" {
		errs = append(errs, errors.New("HTML output path is required"))
	}

	if c.Render.CaptionLength <= 0 {
		errs = append(errs, errors.New("caption length must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

// RequireCredentials checks that an account and an access token are present
func (c *Config) RequireCredentials() error {
	var errs []error

	if strings.TrimSpace(c.Graph.AccountID) == "" {
		errs = append(errs, errors.New("account ID is required (IG_USER_ID)"))
	}
	if strings.TrimSpace(c.Graph.AccessToken) == "" {
		errs = append(errs, errors.New("access token is required (IG_ACCESS_TOKEN)"))
	}

	return errors.Join(errs...)
}

// Masked returns a copy safe for printing
func (c *Config) Masked() *Config {
	masked := *c
	masked.Site.NavLinks = append([]NavLink(nil), c.Site.NavLinks...)
	masked.Graph.AccessToken = MaskSecret(c.Graph.AccessToken)
	return &masked
}

// MaskSecret keeps the first and last four characters of a secret
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if accountID, ok := flags["account-id"].(string); ok && accountID != "" {
		c.Graph.AccountID = accountID
	}
	if version, ok := flags["api-version"].(string); ok && version != "" {
		c.Graph.APIVersion = version
	}
	if limit, ok := flags["limit"].(int); ok {
		c.Graph.Limit = limit
	}
	if jsonPath, ok := flags["output-json"].(string); ok && jsonPath != "" {
		c.Output.JSONPath = jsonPath
	}
	if htmlPath, ok := flags["output-html"].(string); ok && htmlPath != "" {
		c.Output.HTMLPath = htmlPath
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources.
// Precedence: command line flags > environment (including .env) > config file > defaults.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".iggallery.env"))
	}

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeConfig, "failed to load config file")
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeConfig, "failed to load environment variables")
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeConfig, "configuration validation failed")
	}

	return config, nil
}
