package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cron     CronConfig     `yaml:"cron"`
	Admin    AdminConfig    `yaml:"admin"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type CronConfig struct {
	ReportInterval string `yaml:"report_interval"` // status report schedule
}

type AdminConfig struct {
	PageSize int `yaml:"page_size"`
}

// AuthConfig names the headers set by the authenticating proxy in front of the app.
type AuthConfig struct {
	UserHeader string `yaml:"user_header"`
	RoleHeader string `yaml:"role_header"`
	AdminRole  string `yaml:"admin_role"`
}

type LogConfig struct {
	Development bool `yaml:"development"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "3000",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Path: "data/articles.db",
		},
		Cron: CronConfig{
			ReportInterval: "*/30 * * * *",
		},
		Admin: AdminConfig{
			PageSize: 15,
		},
		Auth: AuthConfig{
			UserHeader: "X-User-ID",
			RoleHeader: "X-User-Role",
			AdminRole:  "admin",
		},
		Log: LogConfig{
			Development: true,
		},
	}
}

// Load reads configPath on top of the defaults and applies environment overrides.
// A missing file is not an error; loaded reports whether one was read.
func Load(configPath string) (cfg *Config, loaded bool, err error) {
	cfg = Default()

	if _, statErr := os.Stat(configPath); statErr == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, false, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, false, err
		}
		loaded = true
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if size, err := strconv.Atoi(os.Getenv("ADMIN_PAGE_SIZE")); err == nil && size > 0 {
		cfg.Admin.PageSize = size
	}

	if cfg.Admin.PageSize <= 0 {
		cfg.Admin.PageSize = Default().Admin.PageSize
	}

	return cfg, loaded, nil
}

// GetServerAddress returns the listen address, prefixing bare port numbers with a colon.
func (c *Config) GetServerAddress() string {
	if _, err := strconv.Atoi(c.Server.Port); err == nil {
		return ":" + c.Server.Port
	}
	return c.Server.Port
}
