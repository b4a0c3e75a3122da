package api

import (
	"fmt"
	"net/http"

	"github.com/maksimkurb/ifselect/src/internal/networking"
)

// CheckHealth checks that the interface table is readable and that the
// selection cascade yields at least one interface.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthCheckResponse{
		Healthy: true,
		Checks:  make(map[string]CheckResult),
	}

	if found, err := h.deps.Enum.FindInterfaces("", networking.FamilyAny, h.deps.MaxInterfaces); err != nil {
		response.Healthy = false
		response.Checks["interface_table"] = CheckResult{
			Passed:  false,
			Message: "Failed to read interface table: " + err.Error(),
		}
	} else {
		response.Checks["interface_table"] = CheckResult{
			Passed:  true,
			Message: fmt.Sprintf("%d interface(s) with an address", len(found)),
		}
	}

	sel, err := h.deps.Selector.Select(r.Context(), h.deps.MaxInterfaces)
	switch {
	case err != nil:
		response.Healthy = false
		response.Checks["selection"] = CheckResult{
			Passed:  false,
			Message: "Selection failed: " + err.Error(),
		}
	case len(sel.Interfaces) == 0:
		response.Healthy = false
		response.Checks["selection"] = CheckResult{
			Passed:  false,
			Message: fmt.Sprintf("No interface selected (last step: %s)", sel.Step),
		}
	default:
		response.Checks["selection"] = CheckResult{
			Passed:  true,
			Message: fmt.Sprintf("%d interface(s) selected at step %s", len(sel.Interfaces), sel.Step),
		}
	}

	writeJSONData(w, response)
}
