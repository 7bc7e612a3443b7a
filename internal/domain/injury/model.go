package injury

import "github.com/riskibarqy/football-stats/internal/domain/snapshot"

// Injury is keyed by (PlayerID, FixtureID).
type Injury struct {
	PlayerID  int64
	FixtureID int64
	TeamID    int64
	LeagueID  int64
	Season    int
	Type      string
	Reason    string
	Player    snapshot.Ref
	Team      snapshot.Ref
}
