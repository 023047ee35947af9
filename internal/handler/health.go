package handler

import (
	"net/http"

	"github.com/foosball/league/internal/infra"
)

// HealthHandler returns a health check endpoint that pings db.
func HealthHandler(db infra.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := infra.HealthCheck(r.Context(), db)
		if err != nil {
			RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		RespondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	}
}

// LivenessHandler reports healthy without checking dependencies.
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// APIRootHandler lists the league resources and their collection URLs.
func APIRootHandler(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	base := scheme + "://" + r.Host + "/api/"
	RespondJSON(w, http.StatusOK, map[string]string{
		"players":         base + "players/",
		"games":           base + "games/",
		"foosball-tables": base + "foosball-tables/",
		"performances":    base + "performances/",
	})
}
