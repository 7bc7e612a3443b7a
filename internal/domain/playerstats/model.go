package playerstats

import "github.com/riskibarqy/football-stats/internal/domain/snapshot"

// Metrics are the per-game or per-season performance numbers shared by
// fixture and season stats. Nil means the source did not report it.
type Metrics struct {
	Minutes              *int
	Rating               *float64
	Captain              bool
	Substitute           bool
	ShotsTotal           *int
	ShotsOn              *int
	GoalsTotal           *int
	GoalsConceded        *int
	GoalsAssists         *int
	GoalsSaves           *int
	PassesTotal          *int
	PassesKey            *int
	PassesAccuracy       *int
	TacklesTotal         *int
	TacklesBlocks        *int
	TacklesInterceptions *int
	DuelsTotal           *int
	DuelsWon             *int
	DribblesAttempts     *int
	DribblesSuccess      *int
	DribblesPast         *int
	FoulsDrawn           *int
	FoulsCommitted       *int
	CardsYellow          *int
	CardsYellowRed       *int
	CardsRed             *int
	PenaltyWon           *int
	PenaltyCommitted     *int
	PenaltyScored        *int
	PenaltyMissed        *int
	PenaltySaved         *int
	Offsides             *int
}

// FixtureStat is keyed by (PlayerID, FixtureID, TeamID).
type FixtureStat struct {
	PlayerID  int64
	FixtureID int64
	TeamID    int64
	Number    *int
	Position  string
	Metrics
	Player snapshot.Ref
	Team   snapshot.Ref
}

// SeasonStat is keyed by (PlayerID, TeamID, LeagueID, Season).
type SeasonStat struct {
	PlayerID    int64
	TeamID      int64
	LeagueID    int64
	Season      int
	Appearances *int
	Lineups     *int
	SubIn       *int
	SubOut      *int
	Bench       *int
	Position    string
	Metrics
	Team snapshot.Ref
}
