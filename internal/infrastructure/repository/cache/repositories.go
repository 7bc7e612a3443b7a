// Package cache decorates the repositories behind the HTTP read routes with
// a TTL store. Writes that pass through a decorator evict the keys they touch.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/observability"
	basecache "github.com/riskibarqy/football-stats/internal/platform/cache"
)

// maxCachedEntries bounds each decorator's store.
const maxCachedEntries = 10000

func storeOptions(name string) []basecache.Option {
	return []basecache.Option{
		basecache.WithMaxEntries(maxCachedEntries),
		basecache.WithLookupObserver(observability.CacheLookupObserver(name)),
	}
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

type TeamRepository struct {
	team.Repository
	cache *basecache.Store[cachedTeam]
}

func NewTeamRepository(next team.Repository, ttl time.Duration) *TeamRepository {
	return &TeamRepository{Repository: next, cache: basecache.NewStore[cachedTeam](ttl, storeOptions("team")...)}
}

func teamKey(id int64) string {
	return "team:id:" + strconv.FormatInt(id, 10)
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, teamKey(id), func(ctx context.Context) (cachedTeam, error) {
		item, exists, err := r.Repository.GetByID(ctx, id)
		if err != nil {
			return cachedTeam{}, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) BulkUpsert(ctx context.Context, items []team.Team) (int64, error) {
	n, err := r.Repository.BulkUpsert(ctx, items)
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, teamKey(item.ID))
	}
	r.cache.Delete(ctx, keys...)
	return n, err
}

type cachedFixture struct {
	value  fixture.Fixture
	exists bool
}

type FixtureRepository struct {
	fixture.Repository
	cache *basecache.Store[cachedFixture]
}

func NewFixtureRepository(next fixture.Repository, ttl time.Duration) *FixtureRepository {
	return &FixtureRepository{Repository: next, cache: basecache.NewStore[cachedFixture](ttl, storeOptions("fixture")...)}
}

func fixtureKey(id int64) string {
	return "fixture:id:" + strconv.FormatInt(id, 10)
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, fixtureKey(id), func(ctx context.Context) (cachedFixture, error) {
		item, exists, err := r.Repository.GetByID(ctx, id)
		if err != nil {
			return cachedFixture{}, err
		}
		return cachedFixture{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *FixtureRepository) BulkUpsert(ctx context.Context, items []fixture.Fixture) (int64, error) {
	n, err := r.Repository.BulkUpsert(ctx, items)
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, fixtureKey(item.ID))
	}
	r.cache.Delete(ctx, keys...)
	return n, err
}
