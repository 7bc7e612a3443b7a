package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/team"
	"github.com/riskibarqy/football-stats/internal/infrastructure/repository/memory"
	teammock "github.com/riskibarqy/football-stats/internal/mocks/domain/team"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type countingTeams struct {
	team.Repository
	gets int
}

func (c *countingTeams) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	c.gets++
	return c.Repository.GetByID(ctx, id)
}

func TestTeamRepository_CachesReadsAndEvictsOnWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingTeams{Repository: memory.NewTeamRepository(memory.NewStore(), logging.NewNop())}
	repo := NewTeamRepository(next, time.Minute)

	if _, err := repo.BulkUpsert(ctx, []team.Team{{ID: 33, Name: "Man Utd"}}); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	for i := 0; i < 3; i++ {
		got, ok, err := repo.GetByID(ctx, 33)
		if err != nil || !ok {
			t.Fatalf("get team: ok=%v err=%v", ok, err)
		}
		if got.Name != "Man Utd" {
			t.Fatalf("unexpected name %q", got.Name)
		}
	}
	if next.gets != 1 {
		t.Fatalf("expected 1 backing read, got %d", next.gets)
	}

	if _, err := repo.BulkUpsert(ctx, []team.Team{{ID: 33, Name: "Manchester United"}}); err != nil {
		t.Fatalf("update team: %v", err)
	}
	got, _, err := repo.GetByID(ctx, 33)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.Name != "Manchester United" {
		t.Fatalf("expected fresh value after write, got %q", got.Name)
	}
	if next.gets != 2 {
		t.Fatalf("expected write to evict cached entry, got %d backing reads", next.gets)
	}
}

func TestTeamRepository_CachesMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingTeams{Repository: memory.NewTeamRepository(memory.NewStore(), logging.NewNop())}
	repo := NewTeamRepository(next, time.Minute)

	for i := 0; i < 2; i++ {
		if _, ok, err := repo.GetByID(ctx, 404); err != nil || ok {
			t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
		}
	}
	if next.gets != 1 {
		t.Fatalf("expected miss to be cached, got %d backing reads", next.gets)
	}
}

func TestTeamRepository_DoesNotCacheErrorsButCachesMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	errDown := errors.New("db down")
	next.On("GetByID", mock.Anything, int64(7)).Return(team.Team{}, false, errDown).Twice()
	next.On("GetByID", mock.Anything, int64(8)).Return(team.Team{}, false, nil).Once()

	repo := NewTeamRepository(next, time.Minute)

	for i := 0; i < 2; i++ {
		if _, _, err := repo.GetByID(ctx, 7); !errors.Is(err, errDown) {
			t.Fatalf("expected backing error, got %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, ok, err := repo.GetByID(ctx, 8); err != nil || ok {
			t.Fatalf("expected cached miss, got ok=%v err=%v", ok, err)
		}
	}
}
