// Package config loads and validates the synchronizer configuration using
// Viper.
//
// Configuration is layered: built-in defaults < YAML config file < environment
// variables. Environment variables use the ACCORD_ prefix (e.g.,
// ACCORD_REMOTE_BASE_URL overrides remote.base_url in the YAML). Column names
// are configuration so organizations can keep their existing spreadsheet
// layouts; the values here are threaded into header resolution unchanged.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Remote  RemoteConfig  `mapstructure:"remote"`
	Data    DataConfig    `mapstructure:"data"`
	Columns ColumnsConfig `mapstructure:"columns"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RemoteConfig holds the access-management API connection settings.
type RemoteConfig struct {
	// BaseURL is the base URL used for every API request.
	BaseURL string `mapstructure:"base_url"`
	// CredentialsFile is the path to the JSON API key pair.
	CredentialsFile string `mapstructure:"credentials_file"`
}

// DataConfig names the files inside the data directory.
type DataConfig struct {
	// WorkspacesFile is the workbook containing the desired workspaces.
	WorkspacesFile string `mapstructure:"workspaces_file"`
	// RolesFile is the workbook containing the desired role templates.
	RolesFile string `mapstructure:"roles_file"`
	// UsersDir is the directory of user workbooks.
	UsersDir string `mapstructure:"users_dir"`
}

// ColumnsConfig holds the spreadsheet header text for every logical column.
type ColumnsConfig struct {
	WorkspaceSlug string `mapstructure:"workspace_slug"`
	WorkspaceName string `mapstructure:"workspace_name"`
	UserWorkspace string `mapstructure:"user_workspace"`
	UserName      string `mapstructure:"user_name"`
	UserEmail     string `mapstructure:"user_email"`
	UserRole      string `mapstructure:"user_role"`
	UserActive    string `mapstructure:"user_active"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// bindEnvVars explicitly binds environment variables to config keys. This is
// necessary because AutomaticEnv() doesn't work well with nested structs
// during Unmarshal. Every key here is a non-empty hardcoded string, so any
// BindEnv error indicates a programming bug and is surfaced to the caller.
func bindEnvVars(v *viper.Viper) error {
	keys := []string{
		"remote.base_url",
		"remote.credentials_file",

		"data.workspaces_file",
		"data.roles_file",
		"data.users_dir",

		"columns.workspace_slug",
		"columns.workspace_name",
		"columns.user_workspace",
		"columns.user_name",
		"columns.user_email",
		"columns.user_role",
		"columns.user_active",

		"logging.level",
		"logging.format",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env var %q: %w", key, err)
		}
	}
	return nil
}

// Load loads configuration from file and environment variables. An empty
// configPath searches for accord.yaml next to the working directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("accord")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/accord")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment variables.
	}

	v.SetEnvPrefix("ACCORD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values. File and column defaults
// match the conventional spreadsheet layout.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data.workspaces_file", "workspaces.xlsx")
	v.SetDefault("data.roles_file", "roles.xlsx")
	v.SetDefault("data.users_dir", "users")

	v.SetDefault("columns.workspace_slug", "Slug")
	v.SetDefault("columns.workspace_name", "Name")
	v.SetDefault("columns.user_workspace", "Workspace")
	v.SetDefault("columns.user_name", "Name")
	v.SetDefault("columns.user_email", "Email")
	v.SetDefault("columns.user_role", "Role")
	v.SetDefault("columns.user_active", "Active")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.WorkspacesFile == "" {
		return fmt.Errorf("data.workspaces_file is required")
	}
	if c.Data.RolesFile == "" {
		return fmt.Errorf("data.roles_file is required")
	}
	if c.Data.UsersDir == "" {
		return fmt.Errorf("data.users_dir is required")
	}

	columns := map[string]string{
		"columns.workspace_slug": c.Columns.WorkspaceSlug,
		"columns.workspace_name": c.Columns.WorkspaceName,
		"columns.user_workspace": c.Columns.UserWorkspace,
		"columns.user_name":      c.Columns.UserName,
		"columns.user_email":     c.Columns.UserEmail,
		"columns.user_role":      c.Columns.UserRole,
		"columns.user_active":    c.Columns.UserActive,
	}
	for key, value := range columns {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", key)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}

// RequireRemote checks the settings that only the sync command needs.
func (c *Config) RequireRemote() error {
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("remote.base_url is required")
	}
	if c.Remote.CredentialsFile == "" {
		return fmt.Errorf("remote.credentials_file is required")
	}
	return nil
}
