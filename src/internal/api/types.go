package api

import (
	"github.com/maksimkurb/ifselect/src/internal/networking"
)

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// InterfacesResponse lists interfaces chosen by the enumerator or subnet
// matcher.
type InterfacesResponse struct {
	Interfaces networking.SelectionResult `json:"interfaces"`
}

// SelectResponse is the result of the selection cascade.
type SelectResponse struct {
	Step       networking.SelectionStep   `json:"step"`
	Interfaces networking.SelectionResult `json:"interfaces"`
}

// ResolveResponse describes a parsed endpoint.
type ResolveResponse struct {
	Endpoint string              `json:"endpoint"`
	Address  networking.SockAddr `json:"address"`
	Host     string              `json:"host"`
	Port     uint16              `json:"port"`
	Family   string              `json:"family"`
	ScopeID  uint32              `json:"scope_id,omitempty"`
}

// LocalResponse tells whether an IP address is configured on this host.
type LocalResponse struct {
	IP    string `json:"ip"`
	Local bool   `json:"local"`
}

// StatusResponse returns version and effective parameter information.
type StatusResponse struct {
	Version    VersionInfo       `json:"version"`
	ConfigHash string            `json:"config_hash"`
	Params     map[string]string `json:"params"`
}

// VersionInfo contains build version information.
type VersionInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// HealthCheckResponse returns health check results.
type HealthCheckResponse struct {
	Healthy bool                   `json:"healthy"`
	Checks  map[string]CheckResult `json:"checks"`
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}
