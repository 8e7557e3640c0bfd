// Package config loads application configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

// Config is the root configuration object. It is constructed once at
// process start and passed explicitly to every component that needs it;
// nothing reads it through a package-level singleton.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
	} `json:"http" yaml:"http"`

	Database struct {
		// Path of the SQLite database file. The parent directory is
		// created on startup if absent.
		Path string `json:"path" yaml:"path"`
	} `json:"database" yaml:"database"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	Export ExportConfig `json:"export" yaml:"export"`

	Upload UploadConfig `json:"upload" yaml:"upload"`

	Maintenance MaintenanceConfig `json:"maintenance" yaml:"maintenance"`
}

// AuthConfig defines authentication-related configuration. TTLs are
// expressed as "<integer><unit>" strings with unit in s, m, h or d.
type AuthConfig struct {
	AccessTTL  string `json:"accessTTL" yaml:"accessTTL"`
	RefreshTTL string `json:"refreshTTL" yaml:"refreshTTL"`
	BcryptCost int    `json:"bcryptCost" yaml:"bcryptCost"`
}

// ExportConfig defines where the catalog snapshot is published.
type ExportConfig struct {
	// CandidateDirs are probed in order; the first existing directory
	// wins. Typically the production path first, then dev fallbacks.
	CandidateDirs []string `json:"candidateDirs" yaml:"candidateDirs"`
	// FallbackDir is used when no candidate exists. It is created on the
	// first export.
	FallbackDir string `json:"fallbackDir" yaml:"fallbackDir"`
	// Filename of the snapshot document inside the resolved directory.
	Filename string `json:"filename" yaml:"filename"`
}

// UploadConfig defines where uploaded images land.
type UploadConfig struct {
	Dir string `json:"dir" yaml:"dir"`
	// CarouselDir holds the homepage carousel images, managed as plain
	// files with no database rows behind them.
	CarouselDir string `json:"carouselDir" yaml:"carouselDir"`
}

// MaintenanceConfig drives the background cleanup worker.
type MaintenanceConfig struct {
	// TokenPurgeSchedule is a cron expression for purging expired and
	// revoked refresh tokens. Empty disables the job.
	TokenPurgeSchedule string `json:"tokenPurgeSchedule" yaml:"tokenPurgeSchedule"`
}

// Log holds logger settings.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// New loads configuration for fx injection. The file is resolved as
// $APP_ENV.yaml (default "config.yaml") in the working directory or in
// CONFIG_PATH.
func New() (*Config, error) {
	name := os.Getenv("APP_ENV")
	if name == "" {
		name = "config"
	}

	return Load(name, os.Getenv("CONFIG_PATH"))
}

// Load reads <name>.yaml from the search paths and applies environment
// overrides (dots in keys map to underscores, e.g. SECRETKEY_ACCESS).
func Load(name string, configPath ...string) (*Config, error) {
	cfg := &Config{}
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	for _, path := range configPath {
		if path != "" {
			searchPaths = append(searchPaths, path)
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile != "" {
		if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", name)
		}
	}

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", name)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Env.ServiceName == "" {
		c.Env.ServiceName = "storefront"
	}
	if c.Env.Log.Level == "" {
		c.Env.Log.Level = "info"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 4000
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/storefront.db"
	}
	if c.Auth.AccessTTL == "" {
		c.Auth.AccessTTL = "8h"
	}
	if c.Auth.RefreshTTL == "" {
		c.Auth.RefreshTTL = "7d"
	}
	if c.Export.Filename == "" {
		c.Export.Filename = "data.json"
	}
	if len(c.Export.CandidateDirs) == 0 {
		c.Export.CandidateDirs = []string{
			"/var/www/storefront/frontend/dist",
			filepath.Join("..", "frontend", "public"),
			filepath.Join("..", "frontend", "dist"),
		}
	}
	if c.Export.FallbackDir == "" {
		c.Export.FallbackDir = filepath.Join("..", "frontend", "public")
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = filepath.Join("uploads", "products")
	}
	if c.Upload.CarouselDir == "" {
		c.Upload.CarouselDir = filepath.Join("uploads", "carousel")
	}
}

func (c *Config) validate() error {
	if c.SecretKey.Access == "" || c.SecretKey.Refresh == "" {
		return errors.New("jwt secrets must be provided")
	}
	if _, err := ParseTTL(c.Auth.AccessTTL); err != nil {
		return errors.Wrap(err, "auth.accessTTL")
	}
	if _, err := ParseTTL(c.Auth.RefreshTTL); err != nil {
		return errors.Wrap(err, "auth.refreshTTL")
	}

	return nil
}

var ttlPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseTTL parses a "<integer><unit>" lifetime string where unit is one of
// s, m, h or d. Unrecognized patterns are rejected rather than silently
// parsed to a zero duration, which would mint immediately-expired tokens.
func ParseTTL(s string) (time.Duration, error) {
	m := ttlPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Errorf("invalid ttl %q: want <integer><s|m|h|d>", s)
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, errors.Wrapf(err, "invalid ttl %q", s)
	}

	switch m[2] {
	case "s":
		return time.Duration(value) * time.Second, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, errors.Errorf("invalid ttl unit %q", m[2])
	}
}
