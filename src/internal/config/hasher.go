package config

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/maksimkurb/ifselect/src/internal/networking"
)

const hashCacheTTL = 5 * time.Minute

// HashedParams are the parameters that influence interface selection.
var HashedParams = []string{
	networking.ParamSocketFamily,
	networking.ParamSocketIfname,
	networking.ParamCommID,
	ParamDNSServer,
	ParamMaxInterfaces,
}

// ConfigHasher calculates an MD5 hash of the inputs to interface selection:
// the general settings and the effective parameter values. The hash is
// cached for a few minutes.
type ConfigHasher struct {
	config *Config
	params *Params

	currentHash     string
	currentHashTime time.Time

	mu  sync.RWMutex
	now func() time.Time
}

// NewConfigHasher creates a new config hasher
func NewConfigHasher(config *Config, params *Params) *ConfigHasher {
	return &ConfigHasher{
		config: config,
		params: params,
		now:    time.Now,
	}
}

// GetCurrentConfigHash returns the cached hash, recalculating it on a cache miss.
func (h *ConfigHasher) GetCurrentConfigHash() (string, error) {
	h.mu.RLock()
	if h.now().Sub(h.currentHashTime) < hashCacheTTL && h.currentHash != "" {
		hash := h.currentHash
		h.mu.RUnlock()
		return hash, nil
	}
	h.mu.RUnlock()

	return h.UpdateCurrentConfigHash()
}

// UpdateCurrentConfigHash recalculates the hash and resets the cache.
func (h *ConfigHasher) UpdateCurrentConfigHash() (string, error) {
	hash, err := h.CalculateHash()
	if err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentHash = hash
	h.currentHashTime = h.now()

	return hash, nil
}

// CalculateHash calculates the hash without touching the cache.
func (h *ConfigHasher) CalculateHash() (string, error) {
	data := &ConfigHashData{}
	if h.config != nil {
		data.General = h.config.General
	}
	if h.params != nil {
		data.Params = h.params.Snapshot(HashedParams...)
	}

	// encoding/json sorts map keys
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config data: %w", err)
	}

	hash := md5.Sum(jsonBytes)
	return hex.EncodeToString(hash[:]), nil
}

// ConfigHashData represents the structure used for hashing
type ConfigHashData struct {
	General *GeneralConfig    `json:"general"`
	Params  map[string]string `json:"params"`
}
