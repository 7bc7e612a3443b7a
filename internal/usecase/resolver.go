package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

type Kind string

const (
	KindCountry      Kind = "country"
	KindLeagueSeason Kind = "league-season"
	KindVenue        Kind = "venue"
	KindTeam         Kind = "team"
	KindPlayer       Kind = "player"
	KindCoach        Kind = "coach"
	KindFixture      Kind = "fixture"
)

// Ref names one parent entity. Countries are keyed by Code, league seasons
// by ID plus Season, everything else by ID.
type Ref struct {
	Kind   Kind
	ID     int64
	Season int
	Code   string
}

func (r Ref) valid() bool {
	switch r.Kind {
	case KindCountry:
		return r.Code != ""
	case KindLeagueSeason:
		return r.ID > 0 && r.Season > 0
	default:
		return r.ID > 0
	}
}

func (r Ref) String() string {
	switch r.Kind {
	case KindCountry:
		return string(r.Kind) + ":" + r.Code
	case KindLeagueSeason:
		return string(r.Kind) + ":" + strconv.FormatInt(r.ID, 10) + "/" + strconv.Itoa(r.Season)
	default:
		return string(r.Kind) + ":" + strconv.FormatInt(r.ID, 10)
	}
}

// ParseRef builds a Ref from its textual form. Countries take the code as
// id; league seasons need season.
func ParseRef(kind, id string, season int) (Ref, error) {
	ref := Ref{Kind: Kind(strings.ToLower(strings.TrimSpace(kind))), Season: season}
	if ref.Kind == KindCountry {
		ref.Code = strings.TrimSpace(id)
	} else {
		value, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return Ref{}, fmt.Errorf("%w: id %q is not numeric", ErrInvalidInput, id)
		}
		ref.ID = value
	}
	if !ref.valid() {
		return Ref{}, fmt.Errorf("%w: invalid reference %s", ErrInvalidInput, ref)
	}
	return ref, nil
}

// Checker reports whether the entity is already stored.
type Checker func(ctx context.Context, ref Ref) (bool, error)

// Loader runs the single-entity update for ref and reports whether the
// source returned something usable.
type Loader func(ctx context.Context, ref Ref) (bool, error)

// Fallback upserts a parent built from a fragment embedded in the dependent
// payload.
type Fallback func(ctx context.Context) (bool, error)

type registration struct {
	check Checker
	load  Loader
}

// Registry maps each entity kind to its storage check and its
// single-entity update. Services register themselves at wiring time.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]registration
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[Kind]registration)}
}

func (r *Registry) Register(kind Kind, check Checker, load Loader) {
	r.mu.Lock()
	r.entries[kind] = registration{check: check, load: load}
	r.mu.Unlock()
}

func (r *Registry) lookup(kind Kind) (registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[kind]
	return reg, ok
}

// Kinds lists the registered kinds that have a loader.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.entries))
	for kind, reg := range r.entries {
		if reg.load != nil {
			out = append(out, kind)
		}
	}
	return out
}

// Refresh runs the single-entity update for ref directly.
func (r *Registry) Refresh(ctx context.Context, ref Ref) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.Registry.Refresh")
	defer span.End()

	reg, ok := r.lookup(ref.Kind)
	if !ok || reg.load == nil {
		return fmt.Errorf("%w: unknown entity kind %q", ErrInvalidInput, ref.Kind)
	}
	if !ref.valid() {
		return fmt.Errorf("%w: invalid reference %s", ErrInvalidInput, ref)
	}
	found, err := reg.load(ctx, ref)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", ref, err)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return nil
}

// Resolver materializes missing parents for one orchestrator run. Answers
// are remembered for the run so repeated references cost nothing.
type Resolver struct {
	registry *Registry
	logger   *logging.Logger

	mu    sync.Mutex
	known map[Ref]bool
}

func (r *Registry) NewResolver(logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{registry: r, logger: logger, known: make(map[Ref]bool)}
}

func (r *Resolver) remembered(ref Ref) (present, seen bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	present, seen = r.known[ref]
	return present, seen
}

func (r *Resolver) remember(ref Ref, present bool) {
	r.mu.Lock()
	r.known[ref] = present
	r.mu.Unlock()
}

// EnsureExists reports whether ref is stored once it returns, trying the
// store, then the single-entity update, then fallback. A ref already known
// to be missing in this run skips straight to fallback.
func (r *Resolver) EnsureExists(ctx context.Context, ref Ref, fallback Fallback) bool {
	if !ref.valid() {
		return false
	}

	present, seen := r.remembered(ref)
	if seen && present {
		return true
	}

	if !seen {
		if reg, ok := r.registry.lookup(ref.Kind); ok {
			if reg.check != nil {
				exists, err := reg.check(ctx, ref)
				if err != nil {
					r.logger.WarnContext(ctx, "dependency check failed", "ref", ref.String(), "error", err)
				} else if exists {
					r.remember(ref, true)
					return true
				}
			}
			if reg.load != nil {
				found, err := reg.load(ctx, ref)
				if err != nil {
					r.logger.WarnContext(ctx, "dependency fetch failed", "ref", ref.String(), "error", err)
				} else if found {
					r.remember(ref, true)
					return true
				}
			}
		}
	}

	if fallback != nil {
		ok, err := fallback(ctx)
		if err != nil {
			r.logger.WarnContext(ctx, "dependency fallback failed", "ref", ref.String(), "error", err)
		} else if ok {
			r.remember(ref, true)
			return true
		}
	}

	r.remember(ref, false)
	return false
}

// upsertOne adapts a repository write of a single fragment into a Fallback.
// ok false means the fragment was unusable and there is nothing to try.
func upsertOne[T any](write func(context.Context, []T) (int64, error), record T, ok bool) Fallback {
	if !ok {
		return nil
	}
	return func(ctx context.Context) (bool, error) {
		if _, err := write(ctx, []T{record}); err != nil {
			return false, err
		}
		return true, nil
	}
}
