package router

import (
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/yatri/internal/pkg/config"
)

// middlewareMaintenance answers 503 for the route patterns listed under
// app.maintenance.endpoints, e.g. "/api/admin/broadcast" while the relay is replaced.
func middlewareMaintenance(cfg config.Config) Middleware {
	var routes []string
	if cfg != nil {
		routes = lo.Compact(lo.Map(cfg.GetArray("app.maintenance.endpoints"), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
	}
	blocked := lo.Keyify(routes)

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := blocked[matchedRoutePath(r)]; ok {
				writeJSON(w, errorResponse{Message: "Service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
