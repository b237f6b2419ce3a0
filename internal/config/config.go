package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Shopify/js-uploader/internal/uploader"
	"github.com/Shopify/js-uploader/pkg/xos"
)

// FileName is the config file looked up in the current directory when no
// --config flag is given.
const FileName = "js-uploader.yaml"

// EnvPrefix prefixes environment overrides, e.g. JS_UPLOADER_S3_BUCKET.
const EnvPrefix = "js_uploader"

// Config represents the js-uploader.yaml configuration file.
type Config struct {
	// Object store settings
	S3 S3Config `mapstructure:"s3" yaml:"s3"`

	// Key prefix uploads are written under
	Destination string `mapstructure:"destination" yaml:"destination,omitempty"`

	// Release version; empty means unversioned keys
	Version string `mapstructure:"version" yaml:"version,omitempty"`

	// Also write a "latest" copy of versioned uploads
	Latest bool `mapstructure:"latest" yaml:"latest"`

	// Explicit file list. Wins over Dir when both are set.
	Files []string `mapstructure:"files" yaml:"files,omitempty"`

	// Directory whose immediate files are used when Files is empty
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`

	// Manifest path written after a successful deploy
	Manifest string `mapstructure:"manifest" yaml:"manifest,omitempty"`

	Purge PurgeConfig `mapstructure:"purge" yaml:"purge,omitempty"`
}

// S3Config holds object store settings.
type S3Config struct {
	Bucket       string `mapstructure:"bucket" yaml:"bucket,omitempty"`
	Region       string `mapstructure:"region" yaml:"region,omitempty"`
	Endpoint     string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	PathStyle    bool   `mapstructure:"path_style" yaml:"path_style,omitempty"`
	ACL          string `mapstructure:"acl" yaml:"acl,omitempty"`
	CacheControl string `mapstructure:"cache_control" yaml:"cache_control,omitempty"`
}

// PurgeConfig holds cache purge settings.
type PurgeConfig struct {
	Headers map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`
}

// Defaults returns the default value of every known key. Every key needs a
// default so that environment overrides are picked up by Unmarshal.
func Defaults() map[string]any {
	return map[string]any{
		"s3.bucket":        "",
		"s3.region":        "",
		"s3.endpoint":      "",
		"s3.path_style":    false,
		"s3.acl":           "",
		"s3.cache_control": "",
		"destination":      "",
		"version":          "",
		"latest":           true,
		"files":            []string{},
		"dir":              "",
		"manifest":         "",
		"purge.headers":    map[string]string{},
	}
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"bucket":        "s3.bucket",
	"region":        "s3.region",
	"endpoint":      "s3.endpoint",
	"path-style":    "s3.path_style",
	"acl":           "s3.acl",
	"cache-control": "s3.cache_control",
	"destination":   "destination",
	"version":       "version",
	"file":          "files",
	"dir":           "dir",
	"manifest":      "manifest",
	"header":        "purge.headers",
}

// Load resolves the configuration. Precedence: flags > environment > config
// file > defaults. An empty path looks for js-uploader.yaml in the current
// directory and tolerates its absence; an explicit path must exist.
func Load(fs *pflag.FlagSet, path string) (*Config, error) {
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// YAML reads an unquoted 1.10 as the float 1.1
	if version := v.Get("version"); version != nil {
		if _, ok := version.(string); !ok {
			return nil, fmt.Errorf("version must be a quoted string, got %v", version)
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	// --no-latest is the inverse of the latest key
	if f := fs.Lookup("no-latest"); f != nil && f.Changed {
		v.Set("latest", f.Value.String() != "true")
	}
	return nil
}

// applyDefaults normalises values after unmarshalling.
func (c *Config) applyDefaults() {
	c.Destination = strings.Trim(c.Destination, "/")
	if c.Purge.Headers == nil {
		c.Purge.Headers = map[string]string{}
	}
}

// ValidateSource checks that a file set is configured.
func (c *Config) ValidateSource() error {
	if len(c.Files) == 0 && c.Dir == "" {
		return fmt.Errorf("one of files or dir is required")
	}
	return nil
}

// ValidateDeploy checks everything a deploy needs.
func (c *Config) ValidateDeploy() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}
	if c.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	return nil
}

// FileSource returns the uploader source. Explicit files win over dir.
func (c *Config) FileSource() uploader.FileSource {
	if len(c.Files) > 0 {
		return uploader.ExplicitFiles(c.Files)
	}
	return uploader.FromDirectory(c.Dir)
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the config to a file, keeping the previous one as .bak.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := xos.WriteFileWithBackup(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
