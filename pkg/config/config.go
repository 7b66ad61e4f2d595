package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/lecture-eval"
	ConfigFileName    = "eval.yml"
)

// EvalConfig holds all service configuration settings
type EvalConfig struct {
	// CORSAllowedOrigins is the list of origins allowed by the CORS layer
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	// RatingMin is the lowest accepted evaluation rating
	RatingMin int `yaml:"rating_min" json:"rating_min"`

	// RatingMax is the highest accepted evaluation rating
	RatingMax int `yaml:"rating_max" json:"rating_max"`

	// ListLimitMax is the maximum number of results for listing requests
	ListLimitMax int `yaml:"list_limit_max" json:"list_limit_max"`

	// StorageBackend selects where users, lecturers and evaluations live
	StorageBackend Backend `yaml:"storage_backend" json:"storage_backend"`

	// DataDir is the directory holding the JSON files of the json backend
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// LogLevel is the zap log level (debug, info, warn, error, none)
	LogLevel string `yaml:"log_level" json:"log_level"`

	// AuditEnabled turns on the RFC5424 audit trail
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// AdminTokenSecret is the HMAC secret for admin tokens. Empty leaves
	// lecturer creation open.
	AdminTokenSecret string `yaml:"admin_token_secret" json:"-"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig mirrors EvalConfig with pointers so that explicit zero values
// in the file can be told apart from absent keys.
type fileConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	RatingMin          *int     `yaml:"rating_min"`
	RatingMax          *int     `yaml:"rating_max"`
	ListLimitMax       *int     `yaml:"list_limit_max"`
	StorageBackend     *Backend `yaml:"storage_backend"`
	DataDir            *string  `yaml:"data_dir"`
	LogLevel           *string  `yaml:"log_level"`
	AuditEnabled       *bool    `yaml:"audit_enabled"`
	AdminTokenSecret   *string  `yaml:"admin_token_secret"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
// newDefault returns a config with default values
func newDefault() *EvalConfig {
	return &EvalConfig{
		CORSAllowedOrigins: []string{"*"},
		RatingMin:          1,
		RatingMax:          5,
		ListLimitMax:       1000,
		StorageBackend:     BackendJSON,
		DataDir:            ".",
		LogLevel:           "info",
		AuditEnabled:       false,
		sources:            make(map[string]string),
	}
}

// Default returns a config holding only default values
func Default() *EvalConfig {
	config := newDefault()
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}
	return config
}

// Path returns the config file location, honoring EVAL_CONFIG_PATH
func Path() string {
	configPath := os.Getenv("EVAL_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return filepath.Join(configPath, ConfigFileName)
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*EvalConfig, error) {
	return LoadFile(Path())
}

// LoadFile loads configuration from the given file (if it exists) and
// environment variables.
func LoadFile(path string) (*EvalConfig, error) {
	config := Default()
	config.configFilePath = path

	if data, err := os.ReadFile(path); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		config.applyFileConfig(&file)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"cors_allowed_origins", "rating_min", "rating_max", "list_limit_max",
		"storage_backend", "data_dir", "log_level", "audit_enabled",
		"admin_token_secret",
	}
}

func (c *EvalConfig) applyFileConfig(file *fileConfig) {
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = "file"
	}
	if file.RatingMin != nil {
		c.RatingMin = *file.RatingMin
		c.sources["rating_min"] = "file"
	}
	if file.RatingMax != nil {
		c.RatingMax = *file.RatingMax
		c.sources["rating_max"] = "file"
	}
	if file.ListLimitMax != nil {
		c.ListLimitMax = *file.ListLimitMax
		c.sources["list_limit_max"] = "file"
	}
	if file.StorageBackend != nil {
		c.StorageBackend = *file.StorageBackend
		c.sources["storage_backend"] = "file"
	}
	if file.DataDir != nil {
		c.DataDir = *file.DataDir
		c.sources["data_dir"] = "file"
	}
	if file.LogLevel != nil {
		c.LogLevel = *file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
	if file.AdminTokenSecret != nil {
		c.AdminTokenSecret = *file.AdminTokenSecret
		c.sources["admin_token_secret"] = "file"
	}
}

func (c *EvalConfig) applyEnvConfig() error {
	if val := os.Getenv("EVAL_CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = "environment"
	}
	if val := os.Getenv("EVAL_RATING_MIN"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RatingMin = i
			c.sources["rating_min"] = "environment"
		}
	}
	if val := os.Getenv("EVAL_RATING_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RatingMax = i
			c.sources["rating_max"] = "environment"
		}
	}
	if val := os.Getenv("EVAL_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ListLimitMax = i
			c.sources["list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("EVAL_STORAGE_BACKEND"); val != "" {
		backend, err := BackendString(val)
		if err != nil {
			return fmt.Errorf("invalid EVAL_STORAGE_BACKEND: %w", err)
		}
		c.StorageBackend = backend
		c.sources["storage_backend"] = "environment"
	}
	if val := os.Getenv("EVAL_DATA_DIR"); val != "" {
		c.DataDir = val
		c.sources["data_dir"] = "environment"
	}
	if val := os.Getenv("EVAL_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("EVAL_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("EVAL_ADMIN_TOKEN_SECRET"); val != "" {
		c.AdminTokenSecret = val
		c.sources["admin_token_secret"] = "environment"
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *EvalConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *EvalConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// RatingInRange reports whether rating falls within the configured bounds
func (c *EvalConfig) RatingInRange(rating int) bool {
	return rating >= c.RatingMin && rating <= c.RatingMax
}

// ClampLimit bounds a requested page size. Zero or negative means "as many
// as allowed".
func (c *EvalConfig) ClampLimit(limit int) int {
	if limit <= 0 || limit > c.ListLimitMax {
		return c.ListLimitMax
	}
	return limit
}

// AdminTokensEnabled reports whether lecturer creation requires an admin token
func (c *EvalConfig) AdminTokensEnabled() bool {
	return c.AdminTokenSecret != ""
}

// Validate validates the configuration. All violations are reported together.
func (c *EvalConfig) Validate() error {
	var err error
	if !c.StorageBackend.IsABackend() {
		err = multierr.Append(err, fmt.Errorf("invalid storage_backend: %s", c.StorageBackend))
	}
	if c.RatingMin < 1 {
		err = multierr.Append(err, fmt.Errorf("invalid rating_min: %d (must be at least 1)", c.RatingMin))
	}
	if c.RatingMin > c.RatingMax {
		err = multierr.Append(err, fmt.Errorf("invalid rating bounds: rating_min %d is greater than rating_max %d", c.RatingMin, c.RatingMax))
	}
	if c.ListLimitMax < 1 {
		err = multierr.Append(err, fmt.Errorf("invalid list_limit_max: %d", c.ListLimitMax))
	}
	if c.StorageBackend == BackendJSON && c.DataDir == "" {
		err = multierr.Append(err, fmt.Errorf("data_dir is required for the json storage backend"))
	}
	return err
}

// Attributes returns all configuration attributes with their values and sources
func (c *EvalConfig) Attributes() []Attribute {
	secret := ""
	if c.AdminTokenSecret != "" {
		secret = "(redacted)"
	}
	return []Attribute{
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
		{Name: "rating_min", Value: strconv.Itoa(c.RatingMin), Source: c.Source("rating_min")},
		{Name: "rating_max", Value: strconv.Itoa(c.RatingMax), Source: c.Source("rating_max")},
		{Name: "list_limit_max", Value: strconv.Itoa(c.ListLimitMax), Source: c.Source("list_limit_max")},
		{Name: "storage_backend", Value: c.StorageBackend.String(), Source: c.Source("storage_backend")},
		{Name: "data_dir", Value: c.DataDir, Source: c.Source("data_dir")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "admin_token_secret", Value: secret, Source: c.Source("admin_token_secret")},
	}
}

// FormatText returns a text representation of the configuration
func (c *EvalConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *EvalConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
