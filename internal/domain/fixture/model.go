package fixture

import (
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/snapshot"
)

// Fixture is one match. LeagueID and Season are loose references and are
// not enforced by storage.
type Fixture struct {
	ID          int64
	LeagueID    int64
	Season      int
	Round       string
	Referee     string
	Timezone    string
	KickoffAt   *time.Time
	StatusShort Status
	StatusLong  string
	Elapsed     *int
	VenueID     *int64
	HomeTeamID  int64
	AwayTeamID  int64
	HomeGoals   *int
	AwayGoals   *int
	Score       Score
}

// Score holds the per-period scores for both sides.
type Score struct {
	HalftimeHome  *int
	HalftimeAway  *int
	FulltimeHome  *int
	FulltimeAway  *int
	ExtratimeHome *int
	ExtratimeAway *int
	PenaltyHome   *int
	PenaltyAway   *int
}

// Event is a goal, card, substitution or VAR decision inside a fixture.
// ID is derived from the event content because the source has none.
type Event struct {
	ID        int64
	FixtureID int64
	TeamID    int64
	PlayerID  *int64
	AssistID  *int64
	Elapsed   int
	Extra     *int
	Type      string
	Detail    string
	Comments  string
	// Sequence is the position in the provider's list and only orders reads.
	Sequence int
	// Occurrence ranks events with identical content within one fixture and
	// is part of the synthetic ID.
	Occurrence int
	Team       snapshot.Ref
	Player     snapshot.Ref
	Assist     snapshot.Ref
}

// Lineup is keyed by (FixtureID, TeamID).
type Lineup struct {
	FixtureID   int64
	TeamID      int64
	Formation   string
	StartXI     []LineupPlayer
	Substitutes []LineupPlayer
	Coach       snapshot.Ref
	Team        snapshot.Ref
	Colors      *KitColors
}

type LineupPlayer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Number *int   `json:"number,omitempty"`
	Pos    string `json:"pos,omitempty"`
	Grid   string `json:"grid,omitempty"`
}

type KitColors struct {
	Player     *KitColor `json:"player,omitempty"`
	Goalkeeper *KitColor `json:"goalkeeper,omitempty"`
}

type KitColor struct {
	Primary string `json:"primary,omitempty"`
	Number  string `json:"number,omitempty"`
	Border  string `json:"border,omitempty"`
}

// TeamStatistic is keyed by (FixtureID, TeamID). Raw always carries the
// complete input list, including types that have a dedicated field.
type TeamStatistic struct {
	FixtureID        int64
	TeamID           int64
	ShotsOnGoal      *int
	ShotsOffGoal     *int
	TotalShots       *int
	BlockedShots     *int
	ShotsInsideBox   *int
	ShotsOutsideBox  *int
	Fouls            *int
	CornerKicks      *int
	Offsides         *int
	BallPossession   *int
	YellowCards      *int
	RedCards         *int
	GoalkeeperSaves  *int
	TotalPasses      *int
	PassesAccurate   *int
	PassesPercentage *int
	Raw              []RawStat
	Team             snapshot.Ref
}

// RawStat is one {"type","value"} pair as received. Value keeps the source
// shape (number, percent string or null).
type RawStat struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}
