package api

import (
	"net/http"
)

// ResolveEndpoint parses an endpoint string into a socket address.
// GET /api/v1/resolve?endpoint=
func (h *Handler) ResolveEndpoint(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Query().Get("endpoint")
	if endpoint == "" {
		WriteInvalidRequest(w, "endpoint is required")
		return
	}

	addr, err := h.deps.Parser.Parse(r.Context(), endpoint)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, ResolveResponse{
		Endpoint: endpoint,
		Address:  addr,
		Host:     addr.Host(),
		Port:     addr.PortNumber(),
		Family:   addr.Family().String(),
		ScopeID:  addr.ScopeID,
	})
}
