// Package config provides configuration management for the anaconda client.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig initializes the application configuration.
	InitConfig() (*Settings, error)
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
}

// defaultConfigProvider implements the Provider interface.
type defaultConfigProvider struct {
	v   *viper.Viper
	cfg *Settings
}

// NewDefaultConfigProvider creates a new default config provider.
func NewDefaultConfigProvider() Provider {
	return &defaultConfigProvider{v: viper.New()}
}

// Default configuration values for the anaconda client.
const (
	DefaultURL       = "https://api.anaconda.org"
	DefaultSSLVerify = true
	DefaultTimeout   = 30 * time.Second
	DefaultVerbose   = false
)

// Environment variables understood by the client.
const (
	// EnvForceNewCLI prefers new-style subcommand implementations when non-empty.
	EnvForceNewCLI = "ANACONDA_CLI_FORCE_NEW"
	// EnvForceStandalone disables mounting of legacy subcommands when non-empty.
	EnvForceStandalone = "ANACONDA_CLIENT_FORCE_STANDALONE"
	// EnvConfigDir adds a directory to the configuration search path.
	EnvConfigDir = "ANACONDA_CONFIG_DIR"
	// EnvAPIToken and EnvLegacyAPIToken supply a token when no flag is given.
	EnvAPIToken       = "ANACONDA_API_TOKEN"
	EnvLegacyAPIToken = "BINSTAR_API_TOKEN"
)

const (
	keyForceNew   = "force_new"
	keyStandalone = "standalone"
	keyToken      = "api_token"
)

// ErrUnknownSite is reported when a site alias is not present in the configuration.
var ErrUnknownSite = errors.New("site alias does not exist in the configuration")

// Site holds per-site overrides.
type Site struct {
	URL       string `mapstructure:"url" yaml:"url,omitempty"`
	SSLVerify *bool  `mapstructure:"ssl_verify" yaml:"ssl_verify,omitempty"`
}

// Settings represents the configuration for the anaconda client.
type Settings struct {
	URL         string          `mapstructure:"url" yaml:"url"`
	DefaultSite string          `mapstructure:"default_site" yaml:"default_site,omitempty"`
	SSLVerify   bool            `mapstructure:"ssl_verify" yaml:"ssl_verify"`
	Timeout     time.Duration   `mapstructure:"timeout" yaml:"timeout"`
	Verbose     bool            `mapstructure:"verbose" yaml:"verbose"`
	Sites       map[string]Site `mapstructure:"sites" yaml:"sites,omitempty"`

	// Populated from the environment only.
	Token       string `mapstructure:"-" yaml:"-"`
	ForceNewCLI bool   `mapstructure:"-" yaml:"-"`
	Standalone  bool   `mapstructure:"-" yaml:"-"`
}

// Endpoint is the effective connection configuration for one site.
type Endpoint struct {
	Site      string
	URL       string
	SSLVerify bool
	Timeout   time.Duration
}

// Defaults returns settings populated with default values only.
func Defaults() *Settings {
	return &Settings{
		URL:       DefaultURL,
		SSLVerify: DefaultSSLVerify,
		Timeout:   DefaultTimeout,
		Verbose:   DefaultVerbose,
	}
}

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	p.v.SetConfigFile(path)
}

func (p *defaultConfigProvider) InitConfig() (*Settings, error) {
	cfg, err := load(p.v)
	if err != nil {
		return nil, err
	}
	p.cfg = cfg
	return p.cfg, nil
}

// SearchPaths lists the directories searched for config.yaml, highest priority first.
func SearchPaths() []string {
	var paths []string
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		paths = append(paths, dir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".continuum", "anaconda-client"))
	}
	return append(paths, "/etc/anaconda-client")
}

func load(v *viper.Viper) (*Settings, error) {
	cfg := Defaults()

	v.SetDefault("url", DefaultURL)
	v.SetDefault("ssl_verify", DefaultSSLVerify)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("verbose", DefaultVerbose)

	_ = v.BindEnv(keyForceNew, EnvForceNewCLI)
	_ = v.BindEnv(keyStandalone, EnvForceStandalone)
	_ = v.BindEnv(keyToken, EnvAPIToken, EnvLegacyAPIToken)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range SearchPaths() {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	// Any non-empty value enables a toggle, including "0" and "false".
	cfg.ForceNewCLI = v.GetString(keyForceNew) != ""
	cfg.Standalone = v.GetString(keyStandalone) != ""
	cfg.Token = v.GetString(keyToken)

	return cfg, nil
}

// ForSite returns the endpoint for the named site, falling back to the
// default site. An unknown alias yields the global endpoint and ErrUnknownSite.
func (s *Settings) ForSite(name string) (Endpoint, error) {
	ep := Endpoint{
		URL:       s.URL,
		SSLVerify: s.SSLVerify,
		Timeout:   s.Timeout,
	}
	if ep.URL == "" {
		ep.URL = DefaultURL
	}
	if ep.Timeout <= 0 {
		ep.Timeout = DefaultTimeout
	}

	if name == "" {
		name = s.DefaultSite
	}
	if name == "" {
		return ep, nil
	}
	ep.Site = name

	site, ok := s.Sites[name]
	if !ok {
		return ep, fmt.Errorf("%w: %q", ErrUnknownSite, name)
	}
	if site.URL != "" {
		ep.URL = site.URL
	}
	if site.SSLVerify != nil {
		ep.SSLVerify = *site.SSLVerify
	}
	return ep, nil
}

// ResolveToken returns the API token to use. A flag value naming an existing
// file is read as a token file; any other non-empty value is the token itself.
// Without a flag the token comes from the environment, and may be empty.
func (s *Settings) ResolveToken(flag string) (string, error) {
	if flag == "" {
		return s.Token, nil
	}

	if info, err := os.Stat(flag); err == nil && !info.IsDir() {
		data, err := os.ReadFile(flag)
		if err != nil {
			return "", fmt.Errorf("failed to read token file %s: %w", flag, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	return flag, nil
}
