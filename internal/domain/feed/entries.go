package feed

// CountryEntry is one /countries item.
type CountryEntry struct {
	Name string  `json:"name" validate:"required"`
	Code *string `json:"code"`
	Flag string  `json:"flag"`
}

// LeagueEntry is one /leagues item; one entry carries every season.
type LeagueEntry struct {
	League struct {
		ID   int64  `json:"id" validate:"gt=0"`
		Name string `json:"name" validate:"required"`
		Type string `json:"type"`
		Logo string `json:"logo"`
	} `json:"league"`
	Country CountryEntry  `json:"country"`
	Seasons []SeasonEntry `json:"seasons" validate:"dive"`
}

type SeasonEntry struct {
	Year     int           `json:"year" validate:"gt=0"`
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Current  bool          `json:"current"`
	Coverage CoverageEntry `json:"coverage"`
}

type CoverageEntry struct {
	Fixtures struct {
		Events             bool `json:"events"`
		Lineups            bool `json:"lineups"`
		StatisticsFixtures bool `json:"statistics_fixtures"`
		StatisticsPlayers  bool `json:"statistics_players"`
	} `json:"fixtures"`
	Standings bool `json:"standings"`
	Players   bool `json:"players"`
	Injuries  bool `json:"injuries"`
}

// VenueEntry is both the /venues item and the venue embedded in /teams.
type VenueEntry struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Capacity *int   `json:"capacity"`
	Surface  string `json:"surface"`
	Image    string `json:"image"`
}

type TeamInfo struct {
	ID       int64  `json:"id" validate:"gt=0"`
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code"`
	Country  string `json:"country"`
	Founded  *int   `json:"founded"`
	National bool   `json:"national"`
	Logo     string `json:"logo"`
}

// TeamEntry is one /teams item.
type TeamEntry struct {
	Team  TeamInfo   `json:"team"`
	Venue VenueEntry `json:"venue"`
}

// TeamRef is the short team shape embedded in most resources.
type TeamRef struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// PersonRef is the short player/coach shape embedded in events, lineups
// and fixture player stats.
type PersonRef struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type Birth struct {
	Date    string `json:"date"`
	Place   string `json:"place"`
	Country string `json:"country"`
}

type PlayerInfo struct {
	ID          int64  `json:"id" validate:"gt=0"`
	Name        string `json:"name" validate:"required"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Age         *int   `json:"age"`
	Birth       Birth  `json:"birth"`
	Nationality string `json:"nationality"`
	Height      Scalar `json:"height"`
	Weight      Scalar `json:"weight"`
	Injured     bool   `json:"injured"`
	Photo       string `json:"photo"`
	Position    string `json:"position"`
}

// PlayerEntry is one /players item: the player plus per team/league season
// statistics.
type PlayerEntry struct {
	Player     PlayerInfo        `json:"player"`
	Statistics []SeasonStatEntry `json:"statistics"`
}

// PlayerProfileEntry is one /players/profiles item.
type PlayerProfileEntry struct {
	Player PlayerInfo `json:"player"`
}

type GamesEntry struct {
	Appearences Scalar `json:"appearences"`
	Lineups     Scalar `json:"lineups"`
	Minutes     Scalar `json:"minutes"`
	Number      Scalar `json:"number"`
	Position    string `json:"position"`
	Rating      Scalar `json:"rating"`
	Captain     bool   `json:"captain"`
	Substitute  bool   `json:"substitute"`
}

// StatBlocks are the metric groups shared by season and fixture player stats.
type StatBlocks struct {
	Offsides Scalar `json:"offsides"`
	Shots    struct {
		Total Scalar `json:"total"`
		On    Scalar `json:"on"`
	} `json:"shots"`
	Goals struct {
		Total    Scalar `json:"total"`
		Conceded Scalar `json:"conceded"`
		Assists  Scalar `json:"assists"`
		Saves    Scalar `json:"saves"`
	} `json:"goals"`
	Passes struct {
		Total    Scalar `json:"total"`
		Key      Scalar `json:"key"`
		Accuracy Scalar `json:"accuracy"`
	} `json:"passes"`
	Tackles struct {
		Total         Scalar `json:"total"`
		Blocks        Scalar `json:"blocks"`
		Interceptions Scalar `json:"interceptions"`
	} `json:"tackles"`
	Duels struct {
		Total Scalar `json:"total"`
		Won   Scalar `json:"won"`
	} `json:"duels"`
	Dribbles struct {
		Attempts Scalar `json:"attempts"`
		Success  Scalar `json:"success"`
		Past     Scalar `json:"past"`
	} `json:"dribbles"`
	Fouls struct {
		Drawn     Scalar `json:"drawn"`
		Committed Scalar `json:"committed"`
	} `json:"fouls"`
	Cards struct {
		Yellow    Scalar `json:"yellow"`
		YellowRed Scalar `json:"yellowred"`
		Red       Scalar `json:"red"`
	} `json:"cards"`
	Penalty struct {
		Won       Scalar `json:"won"`
		Committed Scalar `json:"commited"`
		Scored    Scalar `json:"scored"`
		Missed    Scalar `json:"missed"`
		Saved     Scalar `json:"saved"`
	} `json:"penalty"`
}

type SeasonStatEntry struct {
	Team   TeamRef `json:"team"`
	League struct {
		ID     *int64 `json:"id"`
		Name   string `json:"name"`
		Season *int   `json:"season"`
	} `json:"league"`
	Games       GamesEntry `json:"games"`
	Substitutes struct {
		In    Scalar `json:"in"`
		Out   Scalar `json:"out"`
		Bench Scalar `json:"bench"`
	} `json:"substitutes"`
	StatBlocks
}

type CareerEntry struct {
	Team  TeamRef `json:"team"`
	Start string  `json:"start"`
	End   string  `json:"end"`
}

// CoachEntry is one /coachs item.
type CoachEntry struct {
	ID          int64         `json:"id" validate:"gt=0"`
	Name        string        `json:"name" validate:"required"`
	Firstname   string        `json:"firstname"`
	Lastname    string        `json:"lastname"`
	Age         *int          `json:"age"`
	Birth       Birth         `json:"birth"`
	Nationality string        `json:"nationality"`
	Height      Scalar        `json:"height"`
	Weight      Scalar        `json:"weight"`
	Photo       string        `json:"photo"`
	Team        TeamRef       `json:"team"`
	Career      []CareerEntry `json:"career"`
}

type ScorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// FixtureEntry is one /fixtures item. The by-id lookup also embeds the
// events, lineups, statistics and players lists.
type FixtureEntry struct {
	Fixture struct {
		ID       int64  `json:"id" validate:"gt=0"`
		Referee  string `json:"referee"`
		Timezone string `json:"timezone"`
		Date     string `json:"date"`
		Venue    struct {
			ID   *int64 `json:"id"`
			Name string `json:"name"`
			City string `json:"city"`
		} `json:"venue"`
		Status struct {
			Long    string `json:"long"`
			Short   string `json:"short" validate:"required"`
			Elapsed *int   `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Season int    `json:"season"`
		Round  string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home TeamRef `json:"home"`
		Away TeamRef `json:"away"`
	} `json:"teams"`
	Goals ScorePair `json:"goals"`
	Score struct {
		Halftime  ScorePair `json:"halftime"`
		Fulltime  ScorePair `json:"fulltime"`
		Extratime ScorePair `json:"extratime"`
		Penalty   ScorePair `json:"penalty"`
	} `json:"score"`
	Events     []EventEntry              `json:"events"`
	Lineups    []LineupEntry             `json:"lineups"`
	Statistics []TeamStatisticsEntry     `json:"statistics"`
	Players    []FixturePlayersTeamEntry `json:"players"`
}

// EventEntry is one /fixtures/events item.
type EventEntry struct {
	Time struct {
		Elapsed *int `json:"elapsed" validate:"required"`
		Extra   *int `json:"extra"`
	} `json:"time"`
	Team     TeamRef   `json:"team"`
	Player   PersonRef `json:"player"`
	Assist   PersonRef `json:"assist"`
	Type     string    `json:"type" validate:"required"`
	Detail   string    `json:"detail"`
	Comments string    `json:"comments"`
}

type KitColorEntry struct {
	Primary string `json:"primary"`
	Number  string `json:"number"`
	Border  string `json:"border"`
}

type LineupPlayerEntry struct {
	Player struct {
		ID     *int64 `json:"id"`
		Name   string `json:"name"`
		Number *int   `json:"number"`
		Pos    string `json:"pos"`
		Grid   string `json:"grid"`
	} `json:"player"`
}

// LineupEntry is one /fixtures/lineups item.
type LineupEntry struct {
	Team struct {
		ID     *int64 `json:"id"`
		Name   string `json:"name"`
		Logo   string `json:"logo"`
		Colors *struct {
			Player     *KitColorEntry `json:"player"`
			Goalkeeper *KitColorEntry `json:"goalkeeper"`
		} `json:"colors"`
	} `json:"team"`
	Formation   string              `json:"formation"`
	StartXI     []LineupPlayerEntry `json:"startXI"`
	Substitutes []LineupPlayerEntry `json:"substitutes"`
	Coach       PersonRef           `json:"coach"`
}

type StatisticEntry struct {
	Type  string `json:"type"`
	Value Scalar `json:"value"`
}

// TeamStatisticsEntry is one /fixtures/statistics item.
type TeamStatisticsEntry struct {
	Team       TeamRef          `json:"team"`
	Statistics []StatisticEntry `json:"statistics"`
}

type FixturePlayerStatEntry struct {
	Games GamesEntry `json:"games"`
	StatBlocks
}

type FixturePlayerEntry struct {
	Player     PersonRef                `json:"player"`
	Statistics []FixturePlayerStatEntry `json:"statistics"`
}

// FixturePlayersTeamEntry is one /fixtures/players item: one team and its
// players' match statistics.
type FixturePlayersTeamEntry struct {
	Team    TeamRef              `json:"team"`
	Players []FixturePlayerEntry `json:"players"`
}

// InjuryEntry is one /injuries item.
type InjuryEntry struct {
	Player struct {
		ID     *int64 `json:"id" validate:"required"`
		Name   string `json:"name"`
		Photo  string `json:"photo"`
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"player"`
	Team    TeamRef `json:"team"`
	Fixture struct {
		ID   *int64 `json:"id" validate:"required"`
		Date string `json:"date"`
	} `json:"fixture"`
	League struct {
		ID     int64 `json:"id"`
		Season int   `json:"season"`
	} `json:"league"`
}
