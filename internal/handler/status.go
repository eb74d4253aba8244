package handler

import (
	"database/sql"
	"net/http"

	"github.com/njunio10/Convel-Controle/internal/infra/observability"
)

// statusHandler reports the app identity plus a counter snapshot for
// quick operational checks without scraping /metrics.
func statusHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"app":    "controle-convel",
			"status": "rodando",
			"ops":    metrics.GetOpsSnapshot(),
		})
	}
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// readyzHandler answers ready only while the database responds to ping.
func readyzHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

