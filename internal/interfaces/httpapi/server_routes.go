package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixture)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	guard := func(fn http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, fn)
	}

	mux.Handle("POST /v1/admin/entities/{kind}/{id}/refresh", guard(handler.RefreshEntity))
	mux.Handle("POST /v1/admin/domains/{domain}/league-season", guard(handler.UpdateLeagueSeason))
	mux.Handle("POST /v1/admin/domains/{domain}/seasons/{season}", guard(handler.UpdateBySeason))
	mux.Handle("POST /v1/admin/domains/{domain}/leagues/{leagueID}", guard(handler.UpdateByLeague))
	mux.Handle("POST /v1/admin/domains/{domain}/all", guard(handler.UpdateAll))
	mux.Handle("GET /v1/admin/jobs/{jobID}", guard(handler.GetJob))
	mux.Handle("POST /v1/admin/timezones/refresh", guard(handler.RefreshTimezones))
	mux.Handle("POST /v1/admin/countries/refresh", guard(handler.RefreshCountries))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/chunks", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunChunk)))
}
