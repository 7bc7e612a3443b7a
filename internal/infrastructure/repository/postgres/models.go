package postgres

import (
	"time"
)

type countryRow struct {
	Code string `db:"code"`
	Name string `db:"name"`
	Flag string `db:"flag"`
}

type leagueSeasonRow struct {
	LeagueID                  int64      `db:"league_id"`
	Season                    int        `db:"season"`
	Name                      string     `db:"name"`
	Type                      string     `db:"type"`
	Logo                      string     `db:"logo"`
	CountryName               string     `db:"country_name"`
	CountryCode               *string    `db:"country_code"`
	StartDate                 *time.Time `db:"start_date"`
	EndDate                   *time.Time `db:"end_date"`
	IsCurrent                 bool       `db:"is_current"`
	CoverageEvents            bool       `db:"coverage_events"`
	CoverageLineups           bool       `db:"coverage_lineups"`
	CoverageFixtureStatistics bool       `db:"coverage_fixture_statistics"`
	CoveragePlayerStatistics  bool       `db:"coverage_player_statistics"`
	CoverageStandings         bool       `db:"coverage_standings"`
	CoveragePlayers           bool       `db:"coverage_players"`
	CoverageInjuries          bool       `db:"coverage_injuries"`
}

type venueRow struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Address  string `db:"address"`
	City     string `db:"city"`
	Country  string `db:"country"`
	Capacity *int   `db:"capacity"`
	Surface  string `db:"surface"`
	Image    string `db:"image"`
}

type teamRow struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Code     string `db:"code"`
	Country  string `db:"country"`
	Founded  *int   `db:"founded"`
	National bool   `db:"national"`
	Logo     string `db:"logo"`
	VenueID  *int64 `db:"venue_id"`
}

type playerRow struct {
	ID           int64      `db:"id"`
	Name         string     `db:"name"`
	Firstname    string     `db:"firstname"`
	Lastname     string     `db:"lastname"`
	Age          *int       `db:"age"`
	BirthDate    *time.Time `db:"birth_date"`
	BirthPlace   string     `db:"birth_place"`
	BirthCountry string     `db:"birth_country"`
	Nationality  string     `db:"nationality"`
	HeightCM     *int       `db:"height_cm"`
	WeightKG     *int       `db:"weight_kg"`
	Injured      bool       `db:"injured"`
	Photo        string     `db:"photo"`
	Position     string     `db:"position"`
}

type coachRow struct {
	ID           int64      `db:"id"`
	Name         string     `db:"name"`
	Firstname    string     `db:"firstname"`
	Lastname     string     `db:"lastname"`
	Age          *int       `db:"age"`
	BirthDate    *time.Time `db:"birth_date"`
	BirthPlace   string     `db:"birth_place"`
	BirthCountry string     `db:"birth_country"`
	Nationality  string     `db:"nationality"`
	HeightCM     *int       `db:"height_cm"`
	WeightKG     *int       `db:"weight_kg"`
	Photo        string     `db:"photo"`
	TeamID       *int64     `db:"team_id"`
	Career       jsonb      `db:"career"`
}

type fixtureRow struct {
	ID            int64      `db:"id"`
	LeagueID      int64      `db:"league_id"`
	Season        int        `db:"season"`
	Round         string     `db:"round"`
	Referee       string     `db:"referee"`
	Timezone      string     `db:"timezone"`
	KickoffAt     *time.Time `db:"kickoff_at"`
	StatusShort   string     `db:"status_short"`
	StatusLong    string     `db:"status_long"`
	Elapsed       *int       `db:"elapsed"`
	VenueID       *int64     `db:"venue_id"`
	HomeTeamID    int64      `db:"home_team_id"`
	AwayTeamID    int64      `db:"away_team_id"`
	HomeGoals     *int       `db:"home_goals"`
	AwayGoals     *int       `db:"away_goals"`
	HalftimeHome  *int       `db:"halftime_home"`
	HalftimeAway  *int       `db:"halftime_away"`
	FulltimeHome  *int       `db:"fulltime_home"`
	FulltimeAway  *int       `db:"fulltime_away"`
	ExtratimeHome *int       `db:"extratime_home"`
	ExtratimeAway *int       `db:"extratime_away"`
	PenaltyHome   *int       `db:"penalty_home"`
	PenaltyAway   *int       `db:"penalty_away"`
}

type fixtureEventRow struct {
	ID             int64  `db:"id"`
	FixtureID      int64  `db:"fixture_id"`
	TeamID         int64  `db:"team_id"`
	PlayerID       *int64 `db:"player_id"`
	AssistID       *int64 `db:"assist_id"`
	Elapsed        int    `db:"elapsed"`
	Extra          *int   `db:"extra"`
	Type           string `db:"type"`
	Detail         string `db:"detail"`
	Comments       string `db:"comments"`
	Sequence       int    `db:"sequence"`
	TeamSnapshot   jsonb  `db:"team_snapshot"`
	PlayerSnapshot jsonb  `db:"player_snapshot"`
	AssistSnapshot jsonb  `db:"assist_snapshot"`
}

type fixtureLineupRow struct {
	FixtureID    int64  `db:"fixture_id"`
	TeamID       int64  `db:"team_id"`
	Formation    string `db:"formation"`
	StartXI      jsonb  `db:"start_xi"`
	Substitutes  jsonb  `db:"substitutes"`
	Coach        jsonb  `db:"coach"`
	TeamSnapshot jsonb  `db:"team_snapshot"`
	TeamColors   jsonb  `db:"team_colors"`
}

type fixtureTeamStatisticRow struct {
	FixtureID        int64 `db:"fixture_id"`
	TeamID           int64 `db:"team_id"`
	ShotsOnGoal      *int  `db:"shots_on_goal"`
	ShotsOffGoal     *int  `db:"shots_off_goal"`
	TotalShots       *int  `db:"total_shots"`
	BlockedShots     *int  `db:"blocked_shots"`
	ShotsInsideBox   *int  `db:"shots_inside_box"`
	ShotsOutsideBox  *int  `db:"shots_outside_box"`
	Fouls            *int  `db:"fouls"`
	CornerKicks      *int  `db:"corner_kicks"`
	Offsides         *int  `db:"offsides"`
	BallPossession   *int  `db:"ball_possession"`
	YellowCards      *int  `db:"yellow_cards"`
	RedCards         *int  `db:"red_cards"`
	GoalkeeperSaves  *int  `db:"goalkeeper_saves"`
	TotalPasses      *int  `db:"total_passes"`
	PassesAccurate   *int  `db:"passes_accurate"`
	PassesPercentage *int  `db:"passes_percentage"`
	RawStatistics    jsonb `db:"raw_statistics"`
	TeamSnapshot     jsonb `db:"team_snapshot"`
}

// MetricColumns is shared by both player stat tables. It is exported so the
// row builders can read it through the embedding.
type MetricColumns struct {
	Minutes              *int     `db:"minutes"`
	Rating               *float64 `db:"rating"`
	Captain              bool     `db:"captain"`
	Substitute           bool     `db:"substitute"`
	ShotsTotal           *int     `db:"shots_total"`
	ShotsOn              *int     `db:"shots_on"`
	GoalsTotal           *int     `db:"goals_total"`
	GoalsConceded        *int     `db:"goals_conceded"`
	GoalsAssists         *int     `db:"goals_assists"`
	GoalsSaves           *int     `db:"goals_saves"`
	PassesTotal          *int     `db:"passes_total"`
	PassesKey            *int     `db:"passes_key"`
	PassesAccuracy       *int     `db:"passes_accuracy"`
	TacklesTotal         *int     `db:"tackles_total"`
	TacklesBlocks        *int     `db:"tackles_blocks"`
	TacklesInterceptions *int     `db:"tackles_interceptions"`
	DuelsTotal           *int     `db:"duels_total"`
	DuelsWon             *int     `db:"duels_won"`
	DribblesAttempts     *int     `db:"dribbles_attempts"`
	DribblesSuccess      *int     `db:"dribbles_success"`
	DribblesPast         *int     `db:"dribbles_past"`
	FoulsDrawn           *int     `db:"fouls_drawn"`
	FoulsCommitted       *int     `db:"fouls_committed"`
	CardsYellow          *int     `db:"cards_yellow"`
	CardsYellowRed       *int     `db:"cards_yellowred"`
	CardsRed             *int     `db:"cards_red"`
	PenaltyWon           *int     `db:"penalty_won"`
	PenaltyCommitted     *int     `db:"penalty_committed"`
	PenaltyScored        *int     `db:"penalty_scored"`
	PenaltyMissed        *int     `db:"penalty_missed"`
	PenaltySaved         *int     `db:"penalty_saved"`
	Offsides             *int     `db:"offsides"`
}

type playerFixtureStatRow struct {
	PlayerID  int64  `db:"player_id"`
	FixtureID int64  `db:"fixture_id"`
	TeamID    int64  `db:"team_id"`
	Number    *int   `db:"number"`
	Position  string `db:"position"`
	MetricColumns
	PlayerSnapshot jsonb `db:"player_snapshot"`
	TeamSnapshot   jsonb `db:"team_snapshot"`
}

type playerSeasonStatRow struct {
	PlayerID    int64  `db:"player_id"`
	TeamID      int64  `db:"team_id"`
	LeagueID    int64  `db:"league_id"`
	Season      int    `db:"season"`
	Appearances *int   `db:"appearances"`
	Lineups     *int   `db:"lineups"`
	SubIn       *int   `db:"sub_in"`
	SubOut      *int   `db:"sub_out"`
	Bench       *int   `db:"bench"`
	Position    string `db:"position"`
	MetricColumns
	TeamSnapshot jsonb `db:"team_snapshot"`
}

type injuryRow struct {
	PlayerID       int64  `db:"player_id"`
	FixtureID      int64  `db:"fixture_id"`
	TeamID         int64  `db:"team_id"`
	LeagueID       int64  `db:"league_id"`
	Season         int    `db:"season"`
	Type           string `db:"type"`
	Reason         string `db:"reason"`
	PlayerSnapshot jsonb  `db:"player_snapshot"`
	TeamSnapshot   jsonb  `db:"team_snapshot"`
}

type timezoneRow struct {
	Name string `db:"name"`
}
