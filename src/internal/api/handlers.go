package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/maksimkurb/ifselect/src/internal/config"
	"github.com/maksimkurb/ifselect/src/internal/networking"
)

// Dependencies are the components the API serves from.
type Dependencies struct {
	Enum     *networking.Enumerator
	Parser   *networking.EndpointParser
	Selector *networking.InterfaceSelector
	Params   *config.Params
	Hasher   *config.ConfigHasher

	// MaxInterfaces caps "max" query parameters and is the default when
	// none is given.
	MaxInterfaces int
}

// Handler manages all API endpoints and dependencies.
type Handler struct {
	deps Dependencies
}

// NewHandler creates a new API handler.
func NewHandler(deps Dependencies) *Handler {
	if deps.MaxInterfaces <= 0 {
		deps.MaxInterfaces = config.DefaultMaxInterfaces
	}
	return &Handler{deps: deps}
}

// maxParam reads the "max" query parameter, bounded by MaxInterfaces.
func (h *Handler) maxParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("max")
	if raw == "" {
		return h.deps.MaxInterfaces, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	if n > h.deps.MaxInterfaces {
		n = h.deps.MaxInterfaces
	}
	return n, true
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}
