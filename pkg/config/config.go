package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Author     string       `mapstructure:"author" yaml:"author,omitempty"`
	ContentDir string       `mapstructure:"content_dir" yaml:"content_dir,omitempty"`
	PublishDir string       `mapstructure:"publish_dir" yaml:"publish_dir,omitempty"`
	Model      string       `mapstructure:"model" yaml:"model,omitempty"`
	Site       SiteConfig   `mapstructure:"site" yaml:"site,omitempty"`
	Resume     ResumeConfig `mapstructure:"resume" yaml:"resume,omitempty"`
}

// SiteConfig holds the static-site and publishing settings.
type SiteConfig struct {
	BaseURL       string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	DefaultBranch string `mapstructure:"default_branch" yaml:"default_branch,omitempty"`
	PublishBranch string `mapstructure:"publish_branch" yaml:"publish_branch,omitempty"`
	Environment   string `mapstructure:"environment" yaml:"environment,omitempty"`
}

// ResumeConfig holds the LaTeX resume settings.
type ResumeConfig struct {
	SourceDir string `mapstructure:"source_dir" yaml:"source_dir,omitempty"`
	AssetPath string `mapstructure:"asset_path" yaml:"asset_path,omitempty"`
	Engine    string `mapstructure:"engine" yaml:"engine,omitempty"`
}

var (
	configFile = ".blogx-config.yaml"
	v          *viper.Viper
)

func init() {
	v = newViper()
}

func newViper() *viper.Viper {
	vp := viper.New()
	vp.SetConfigFile(configFile)

	// Defaults
	vp.SetDefault("content_dir", "content/posts")
	vp.SetDefault("publish_dir", "public")
	vp.SetDefault("site.default_branch", "main")
	vp.SetDefault("site.publish_branch", "gh-pages")
	vp.SetDefault("site.environment", "production")
	vp.SetDefault("resume.source_dir", "resume")
	vp.SetDefault("resume.asset_path", "static/docs/resume.pdf")
	vp.SetDefault("resume.engine", "latexmk")

	// Environment variables
	vp.SetEnvPrefix("BLOGX")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	// Try to read config file (ignore if not exists)
	_ = vp.ReadInConfig()
	return vp
}

func Path() string {
	return configFile
}

func Load() (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

var knownKeys = []string{
	"author",
	"content_dir",
	"publish_dir",
	"model",
	"site.base_url",
	"site.default_branch",
	"site.publish_branch",
	"site.environment",
	"resume.source_dir",
	"resume.asset_path",
	"resume.engine",
}

func isKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

func Get(key string) (string, error) {
	if !isKnownKey(key) {
		return "", fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(knownKeys, ", "))
	}
	return v.GetString(key), nil
}

func Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(knownKeys, ", "))
	}

	v.Set(key, value)

	cfg, err := Load()
	if err != nil {
		return err
	}
	return writeConfig(cfg)
}

func writeConfig(cfg *Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(configFile, buf.Bytes(), 0o644)
}

// All returns every known key with its effective value.
func All() (map[string]string, error) {
	out := make(map[string]string, len(knownKeys))
	for _, k := range knownKeys {
		out[k] = v.GetString(k)
	}
	return out, nil
}

// Save saves the full config
func Save(c *Config) error {
	return writeConfig(c)
}

// ResetForTest resets viper for testing (only use in tests)
func ResetForTest(testPath string) {
	configFile = testPath + "/.blogx-config.yaml"
	v = newViper()
}
