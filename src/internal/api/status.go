package api

import (
	"net/http"

	"github.com/maksimkurb/ifselect/src/internal/config"
	"github.com/maksimkurb/ifselect/src/internal/log"
)

var (
	// Version information set via ldflags at build time
	Version = "dev"
	Date    = "n/a"
	Commit  = "n/a"
)

// GetStatus returns version information and the effective selection
// parameters.
// GET /api/v1/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	response := StatusResponse{
		Version: VersionInfo{
			Version: Version,
			Date:    Date,
			Commit:  Commit,
		},
		Params: map[string]string{},
	}

	if h.deps.Params != nil {
		response.Params = h.deps.Params.Snapshot(config.HashedParams...)
	}

	if h.deps.Hasher != nil {
		hash, err := h.deps.Hasher.GetCurrentConfigHash()
		if err != nil {
			log.Warnf("Failed to get current config hash: %v", err)
			hash = "error"
		}
		response.ConfigHash = hash
	}

	writeJSONData(w, response)
}
