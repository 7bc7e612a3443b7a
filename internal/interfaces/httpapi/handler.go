package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/jobprogress"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/riskibarqy/football-stats/internal/usecase"
)

type EntityRefresher interface {
	Refresh(ctx context.Context, ref usecase.Ref) error
}

type Sweeper interface {
	UpdateByLeagueSeason(ctx context.Context, domain string, leagueID int64, season int, maxPages int) (usecase.Counts, error)
	UpdateBySeason(ctx context.Context, domain string, season int) (usecase.SweepResult, error)
	UpdateByLeague(ctx context.Context, domain string, leagueID int64) (usecase.SweepResult, error)
}

type ChunkJobs interface {
	UpdateAll(ctx context.Context, domain string) (string, error)
	RunChunk(ctx context.Context, task jobprogress.ChunkTask) error
	Status(ctx context.Context, jobID string) (jobprogress.Progress, error)
}

type TeamReader interface {
	GetByID(ctx context.Context, id int64) (team.Team, bool, error)
}

type FixtureReader interface {
	GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error)
}

type EventReader interface {
	ListByFixture(ctx context.Context, fixtureID int64) ([]fixture.Event, error)
}

// Dependencies groups what the handler serves. A nil dependency turns its
// routes into 503 responses.
type Dependencies struct {
	Entities         EntityRefresher
	Sweeps           Sweeper
	Jobs             ChunkJobs
	Teams            TeamReader
	Fixtures         FixtureReader
	Events           EventReader
	RefreshTimezones func(ctx context.Context) (usecase.Counts, error)
	RefreshCountries func(ctx context.Context) (usecase.Counts, error)
	ProviderBreaker  func() string
	DefaultMaxPages  int
}

type Handler struct {
	deps      Dependencies
	logger    *logging.Logger
	validator *validator.Validate
	started   time.Time
}

func NewHandler(deps Dependencies, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		deps:      deps,
		logger:    logger,
		validator: validator.New(),
		started:   time.Now(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	out := map[string]string{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}
	if h.deps.ProviderBreaker != nil {
		out["provider_circuit"] = h.deps.ProviderBreaker()
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	if h.deps.Teams == nil {
		writeError(ctx, w, fmt.Errorf("%w: team reader is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, exists, err := h.deps.Teams.GetByID(ctx, teamID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: team %d", usecase.ErrNotFound, teamID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	if h.deps.Fixtures == nil {
		writeError(ctx, w, fmt.Errorf("%w: fixture reader is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	fixtureID, err := pathInt64(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, exists, err := h.deps.Fixtures.GetByID(ctx, fixtureID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: fixture %d", usecase.ErrNotFound, fixtureID))
		return
	}

	out := fixtureToDTO(item)
	if h.deps.Events != nil {
		events, err := h.deps.Events.ListByFixture(ctx, fixtureID)
		if err != nil {
			h.logger.WarnContext(ctx, "list fixture events failed", "fixture_id", fixtureID, "error", err)
		}
		out.Events = make([]eventDTO, 0, len(events))
		for _, event := range events {
			out.Events = append(out.Events, eventToDTO(event))
		}
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	value, err := pathInt64(r, name)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}
