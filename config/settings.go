package config

import (
	"fmt"

	"github.com/creasty/defaults"

	"github.com/skillsenselab/vaultkit/logger"
	"github.com/skillsenselab/vaultkit/validation"
)

// Settings holds everything the example programs need to talk to a vault:
// where it is, how to authenticate, and how chatty to be. Loaded via
// LoadSettings from YAML, .env, and environment variables.
type Settings struct {
	BaseConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the vault base URL.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required,url"`

	// Token is a static bearer token. Leave empty to read the token from
	// the environment variable named by TokenEnvVar instead.
	Token string `yaml:"token" mapstructure:"token"`

	// TokenEnvVar names the environment variable holding the bearer token.
	TokenEnvVar string `yaml:"token_env_var" mapstructure:"token_env_var" default:"VAULT_TOKEN"`

	// APIVersion overrides the service API version pinned on requests.
	APIVersion string `yaml:"api_version" mapstructure:"api_version"`

	// OTLPEndpoint enables OpenTelemetry export when set (host:port).
	OTLPEndpoint string `yaml:"otlp_endpoint" mapstructure:"otlp_endpoint"`

	// Logging configures the example's logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills zero-value fields with struct-tag defaults.
func (s *Settings) ApplyDefaults() error {
	s.BaseConfig.ApplyDefaults()
	if err := defaults.Set(s); err != nil {
		return fmt.Errorf("config: apply defaults: %w", err)
	}
	if s.Logging.ServiceName == "" {
		s.Logging.ServiceName = s.Name
	}
	s.Logging.ApplyDefaults()
	return nil
}

// Validate checks the settings after defaults are applied.
func (s *Settings) Validate() error {
	if err := s.BaseConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(s); err != nil {
		return err
	}
	return s.Logging.Validate()
}

// LoadSettings loads, defaults, and validates Settings for a named program.
func LoadSettings(serviceName string, opts ...LoaderOption) (*Settings, error) {
	s := &Settings{}
	if err := LoadConfig(serviceName, s, opts...); err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = serviceName
	}
	if err := s.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
