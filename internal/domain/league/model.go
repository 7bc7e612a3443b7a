package league

import "time"

// Season is one league in one season year, keyed by (LeagueID, Season).
type Season struct {
	LeagueID    int64
	Season      int
	Name        string
	Type        string
	Logo        string
	CountryName string
	CountryCode *string
	StartDate   *time.Time
	EndDate     *time.Time
	Current     bool
	Coverage    Coverage
}

// Coverage lists which resources the provider serves for a league season.
type Coverage struct {
	Events            bool
	Lineups           bool
	FixtureStatistics bool
	PlayerStatistics  bool
	Standings         bool
	Players           bool
	Injuries          bool
}

// Key identifies a league season.
type Key struct {
	LeagueID int64
	Season   int
}

func (s Season) Key() Key {
	return Key{LeagueID: s.LeagueID, Season: s.Season}
}

func (k Key) Valid() bool {
	return k.LeagueID > 0 && k.Season > 0
}
