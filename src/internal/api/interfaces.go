package api

import (
	"net/http"

	"github.com/maksimkurb/ifselect/src/internal/networking"
)

// GetInterfaces enumerates interfaces passing a filter spec.
// GET /api/v1/interfaces?spec=&family=&max=
func (h *Handler) GetInterfaces(w http.ResponseWriter, r *http.Request) {
	max, ok := h.maxParam(r)
	if !ok {
		WriteInvalidRequest(w, "max must be a positive integer")
		return
	}
	q := r.URL.Query()

	found, err := h.deps.Enum.FindInterfaces(q.Get("spec"), networking.ParseFamily(q.Get("family")), max)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, InterfacesResponse{Interfaces: nonNil(found)})
}

// SelectInterfaces runs the selection cascade.
// GET /api/v1/select?max=
func (h *Handler) SelectInterfaces(w http.ResponseWriter, r *http.Request) {
	max, ok := h.maxParam(r)
	if !ok {
		WriteInvalidRequest(w, "max must be a positive integer")
		return
	}

	sel, err := h.deps.Selector.Select(r.Context(), max)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, SelectResponse{Step: sel.Step, Interfaces: nonNil(sel.Interfaces)})
}

// MatchSubnet lists interfaces sharing a subnet with an endpoint.
// GET /api/v1/subnet?endpoint=&max=
func (h *Handler) MatchSubnet(w http.ResponseWriter, r *http.Request) {
	max, ok := h.maxParam(r)
	if !ok {
		WriteInvalidRequest(w, "max must be a positive integer")
		return
	}
	endpoint := r.URL.Query().Get("endpoint")
	if endpoint == "" {
		WriteInvalidRequest(w, "endpoint is required")
		return
	}

	remote, err := h.deps.Parser.Parse(r.Context(), endpoint)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	found, err := h.deps.Enum.FindInterfaceMatchSubnet(remote, max)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, InterfacesResponse{Interfaces: nonNil(found)})
}

// IsLocal reports whether an IP address is configured on this host.
// GET /api/v1/local?ip=
func (h *Handler) IsLocal(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")
	if ip == "" {
		WriteInvalidRequest(w, "ip is required")
		return
	}

	local, err := h.deps.Enum.IsLocalAddress(ip)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	writeJSONData(w, LocalResponse{IP: ip, Local: local})
}

// nonNil makes empty results encode as [] instead of null.
func nonNil(r networking.SelectionResult) networking.SelectionResult {
	if r == nil {
		return networking.SelectionResult{}
	}
	return r
}
