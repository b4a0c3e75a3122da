//go:build dev

package api

import (
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
)

// debugProfiles are served by name under /debug/pprof/.
var debugProfiles = []string{"heap", "goroutine", "allocs", "block", "mutex"}

// registerPprof mounts the runtime profiler in dev builds. ReadOnly lets the
// GET endpoints through; /symbol also accepts POST and is left GET-only here.
func registerPprof(r chi.Router) {
	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		for _, name := range debugProfiles {
			r.Handle("/"+name, pprof.Handler(name))
		}
	})
}
