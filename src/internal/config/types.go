package config

import (
	"path/filepath"
)

const (
	DefaultMaxInterfaces = 16
	DefaultListenAddr    = "127.0.0.1:8179"
)

// DefaultEnvPrefixes are the environment variable prefixes searched for
// parameters, in priority order.
var DefaultEnvPrefixes = []string{"UCCL_", "NCCL_"}

type Config struct {
	// General holds general configuration.
	General *GeneralConfig `toml:"general" json:"general"`
	// API holds the HTTP API settings used by "ifselect serve".
	API *APIConfig `toml:"api" json:"api"`
	// Params are parameter defaults (SOCKET_IFNAME, SOCKET_FAMILY, COMM_ID, DNS_SERVER). Environment variables take precedence.
	Params map[string]string `toml:"params,omitempty" json:"params,omitempty"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// EnvPrefixes are the prefixes searched for parameters in the environment (default: ["UCCL_", "NCCL_"]).
	EnvPrefixes []string `toml:"env_prefixes" json:"env_prefixes" validate:"min=1,dive,env_prefix"`
	// EnvFiles are KEY=VALUE files loaded into the parameter store (default: ["~/.ifselect.conf", "/etc/ifselect.conf"]). <prefix>CONF_FILE replaces the first one.
	EnvFiles []string `toml:"env_files,omitempty" json:"env_files,omitempty" validate:"dive,required"`
	// MaxInterfaces is the maximum number of interfaces returned by a selection (default: 16).
	MaxInterfaces int `toml:"max_interfaces" json:"max_interfaces" validate:"min=1,max=64"`
	// StrictFilters rejects filter prefixes longer than 63 characters instead of truncating them.
	StrictFilters bool `toml:"strict_filters" json:"strict_filters"`
	// StrictEndpoints rejects overlong host names and malformed "[addr]" suffixes in endpoints.
	StrictEndpoints bool `toml:"strict_endpoints" json:"strict_endpoints"`
}

type APIConfig struct {
	// ListenAddr is the address the HTTP API listens on (default: 127.0.0.1:8179).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"hostport_or_empty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		General: &GeneralConfig{
			EnvPrefixes:   append([]string(nil), DefaultEnvPrefixes...),
			MaxInterfaces: DefaultMaxInterfaces,
		},
		API: &APIConfig{
			ListenAddr: DefaultListenAddr,
		},
		Params: map[string]string{},
	}
}

// GetConfigDir returns the directory of the loaded config file, or "" for
// a default configuration.
func (c *Config) GetConfigDir() string {
	if c._absConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c._absConfigFilePath)
}

// GetConfigPath returns the absolute path of the loaded config file.
func (c *Config) GetConfigPath() string {
	return c._absConfigFilePath
}
