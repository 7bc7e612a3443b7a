package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/football-stats/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type leagueSeasonRequest struct {
	LeagueID int64 `json:"league_id" validate:"required,gt=0"`
	Season   int   `json:"season" validate:"required,gt=0"`
	MaxPages int   `json:"max_pages" validate:"gte=0"`
}

func (h *Handler) RefreshEntity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshEntity")
	defer span.End()

	if h.deps.Entities == nil {
		writeError(ctx, w, fmt.Errorf("%w: entity refresher is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	season := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("season")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: season must be an integer", usecase.ErrInvalidInput))
			return
		}
		season = value
	}
	ref, err := usecase.ParseRef(r.PathValue("kind"), r.PathValue("id"), season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.deps.Entities.Refresh(ctx, ref); err != nil {
		h.logger.WarnContext(ctx, "refresh entity failed", "ref", ref.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"ref":       ref.String(),
		"refreshed": true,
	})
}

func (h *Handler) UpdateLeagueSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeagueSeason")
	defer span.End()

	if h.deps.Sweeps == nil {
		writeError(ctx, w, fmt.Errorf("%w: sweep service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req leagueSeasonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}
	maxPages := req.MaxPages
	if maxPages == 0 {
		maxPages = h.deps.DefaultMaxPages
	}

	domain := r.PathValue("domain")
	counts, err := h.deps.Sweeps.UpdateByLeagueSeason(ctx, domain, req.LeagueID, req.Season, maxPages)
	if err != nil {
		h.logger.WarnContext(ctx, "league season update failed",
			"domain", domain, "league_id", req.LeagueID, "season", req.Season,
			"success", counts.Success, "errors", counts.Errors, "error", err)
		if counts == (usecase.Counts{}) {
			writeError(ctx, w, err)
			return
		}
		writeErrorWithData(ctx, w, err, counts)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, counts)
}

func (h *Handler) UpdateBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateBySeason")
	defer span.End()

	if h.deps.Sweeps == nil {
		writeError(ctx, w, fmt.Errorf("%w: sweep service is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	season, err := pathInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.deps.Sweeps.UpdateBySeason(ctx, r.PathValue("domain"), season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) UpdateByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateByLeague")
	defer span.End()

	if h.deps.Sweeps == nil {
		writeError(ctx, w, fmt.Errorf("%w: sweep service is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	leagueID, err := pathInt64(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.deps.Sweeps.UpdateByLeague(ctx, r.PathValue("domain"), leagueID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RefreshTimezones(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshTimezones")
	defer span.End()

	if h.deps.RefreshTimezones == nil {
		writeError(ctx, w, fmt.Errorf("%w: timezone refresh is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	counts, err := h.deps.RefreshTimezones(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, counts)
}

func (h *Handler) RefreshCountries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshCountries")
	defer span.End()

	if h.deps.RefreshCountries == nil {
		writeError(ctx, w, fmt.Errorf("%w: country refresh is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	counts, err := h.deps.RefreshCountries(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, counts)
}

func decodeJSON(r *http.Request, out any) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
