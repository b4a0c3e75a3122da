package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maksimkurb/ifselect/src/internal/log"
)

func init() {
	log.DisableLogs()
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/file.toml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "invalid.toml")

	invalidTOML := `[general
	max_interfaces = 4`

	err := os.WriteFile(configFile, []byte(invalidTOML), 0644)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err = LoadConfig(configFile)
	if err == nil {
		t.Fatal("Expected error for invalid TOML")
	}
	if !strings.Contains(err.Error(), "line ") {
		t.Errorf("Expected error to carry the position, got: %v", err)
	}
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "valid.toml")

	validTOML := `[general]
env_prefixes = ["MY_"]
max_interfaces = 4
strict_filters = true

[params]
SOCKET_IFNAME = "^docker,lo"
COMM_ID = "10.0.0.1:9000"`

	err := os.WriteFile(configFile, []byte(validTOML), 0644)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.General.MaxInterfaces != 4 {
		t.Errorf("Expected max_interfaces 4, got %d", cfg.General.MaxInterfaces)
	}
	if len(cfg.General.EnvPrefixes) != 1 || cfg.General.EnvPrefixes[0] != "MY_" {
		t.Errorf("Expected env_prefixes [MY_], got %v", cfg.General.EnvPrefixes)
	}
	if !cfg.General.StrictFilters {
		t.Error("Expected strict_filters to be true")
	}
	if cfg.Params["SOCKET_IFNAME"] != "^docker,lo" {
		t.Errorf("Expected SOCKET_IFNAME param, got %q", cfg.Params["SOCKET_IFNAME"])
	}
	if cfg.API == nil || cfg.API.ListenAddr != DefaultListenAddr {
		t.Errorf("Expected default api section, got %+v", cfg.API)
	}
	if cfg.GetConfigPath() != configFile {
		t.Errorf("Expected config path %s, got %s", configFile, cfg.GetConfigPath())
	}
	if cfg.GetConfigDir() != tmpDir {
		t.Errorf("Expected config dir %s, got %s", tmpDir, cfg.GetConfigDir())
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.General.MaxInterfaces != DefaultMaxInterfaces {
		t.Errorf("Expected default max_interfaces, got %d", cfg.General.MaxInterfaces)
	}
	if len(cfg.General.EnvPrefixes) != 2 || cfg.General.EnvPrefixes[0] != "UCCL_" || cfg.General.EnvPrefixes[1] != "NCCL_" {
		t.Errorf("Expected default prefixes, got %v", cfg.General.EnvPrefixes)
	}
	if cfg.Params == nil {
		t.Error("Expected params map to be initialized")
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Expected default config to be valid, got: %v", err)
	}
}

func TestSerializeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params["SOCKET_FAMILY"] = "AF_INET"

	buf, err := cfg.SerializeConfig()
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}

	parsed, err := ParseConfig(buf.Bytes())
	if err != nil {
		t.Fatalf("Failed to parse serialized config: %v", err)
	}
	if parsed.Params["SOCKET_FAMILY"] != "AF_INET" {
		t.Errorf("Expected SOCKET_FAMILY to survive serialization, got %v", parsed.Params)
	}
}
