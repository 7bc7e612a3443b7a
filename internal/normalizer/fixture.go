package normalizer

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strings"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/injury"
	"github.com/riskibarqy/football-stats/internal/domain/playerstats"
	"github.com/riskibarqy/football-stats/internal/domain/snapshot"
	"github.com/riskibarqy/football-stats/internal/domain/venue"
)

func Fixture(entry feed.FixtureEntry) (fixture.Fixture, error) {
	if err := check(entry); err != nil {
		return fixture.Fixture{}, err
	}
	status, err := MatchStatus(entry.Fixture.Status.Short)
	if err != nil {
		return fixture.Fixture{}, err
	}
	homeID, ok := idOf(entry.Teams.Home.ID)
	if !ok {
		return fixture.Fixture{}, reject("fixture %d has no home team", entry.Fixture.ID)
	}
	awayID, ok := idOf(entry.Teams.Away.ID)
	if !ok {
		return fixture.Fixture{}, reject("fixture %d has no away team", entry.Fixture.ID)
	}

	return fixture.Fixture{
		ID:          entry.Fixture.ID,
		LeagueID:    entry.League.ID,
		Season:      entry.League.Season,
		Round:       entry.League.Round,
		Referee:     entry.Fixture.Referee,
		Timezone:    entry.Fixture.Timezone,
		KickoffAt:   ParseTimestamp(entry.Fixture.Date),
		StatusShort: status,
		StatusLong:  entry.Fixture.Status.Long,
		Elapsed:     entry.Fixture.Status.Elapsed,
		VenueID:     optionalID(entry.Fixture.Venue.ID),
		HomeTeamID:  homeID,
		AwayTeamID:  awayID,
		HomeGoals:   entry.Goals.Home,
		AwayGoals:   entry.Goals.Away,
		Score: fixture.Score{
			HalftimeHome:  entry.Score.Halftime.Home,
			HalftimeAway:  entry.Score.Halftime.Away,
			FulltimeHome:  entry.Score.Fulltime.Home,
			FulltimeAway:  entry.Score.Fulltime.Away,
			ExtratimeHome: entry.Score.Extratime.Home,
			ExtratimeAway: entry.Score.Extratime.Away,
			PenaltyHome:   entry.Score.Penalty.Home,
			PenaltyAway:   entry.Score.Penalty.Away,
		},
	}, nil
}

// FixtureVenueFragment returns the venue embedded in a fixture entry. The
// fixture feed carries only id, name and city.
func FixtureVenueFragment(entry feed.FixtureEntry) (venue.Venue, bool) {
	return VenueFromFragment(feed.VenueEntry{
		ID:   entry.Fixture.Venue.ID,
		Name: entry.Fixture.Venue.Name,
		City: entry.Fixture.Venue.City,
	})
}

// Event normalizes one match event. seq is the event's position in the
// fixture's list; it orders reads but is not part of the ID. The ID assumes
// no identical earlier event, use AssignEventIDs for a whole list.
func Event(fixtureID int64, seq int, entry feed.EventEntry) (fixture.Event, error) {
	if err := check(entry); err != nil {
		return fixture.Event{}, err
	}
	teamID, ok := idOf(entry.Team.ID)
	if !ok {
		return fixture.Event{}, reject("fixture %d event %d has no team", fixtureID, seq)
	}
	if fixtureID <= 0 {
		return fixture.Event{}, reject("event has no fixture")
	}

	ev := fixture.Event{
		FixtureID: fixtureID,
		TeamID:    teamID,
		PlayerID:  optionalID(entry.Player.ID),
		AssistID:  optionalID(entry.Assist.ID),
		Elapsed:   *entry.Time.Elapsed,
		Extra:     entry.Time.Extra,
		Type:      strings.TrimSpace(entry.Type),
		Detail:    strings.TrimSpace(entry.Detail),
		Comments:  entry.Comments,
		Sequence:  seq,
		Team:      snapshot.Ref{ID: teamID, Name: entry.Team.Name, Image: entry.Team.Logo},
		Player:    personSnapshot(entry.Player),
		Assist:    personSnapshot(entry.Assist),
	}
	ev.ID = EventID(ev)
	return ev, nil
}

// AssignEventIDs numbers events that share the same content in list order
// and derives every ID from content plus that rank. An event inserted
// upstream on a later fetch therefore leaves the other IDs unchanged.
func AssignEventIDs(events []fixture.Event) {
	seen := make(map[int64]int, len(events))
	for i := range events {
		events[i].Occurrence = 0
		content := EventID(events[i])
		events[i].Occurrence = seen[content]
		seen[content]++
		events[i].ID = EventID(events[i])
	}
}

// EventID derives a stable positive id from the event content and its
// occurrence rank.
func EventID(ev fixture.Event) int64 {
	h := fnv.New64a()
	var buf [8]byte
	writeInt := func(v int64) {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	writeInt(ev.FixtureID)
	writeInt(ev.TeamID)
	writeInt(int64(ev.Elapsed))
	if ev.Extra != nil {
		writeInt(int64(*ev.Extra))
	} else {
		writeInt(-1)
	}
	_, _ = h.Write([]byte(ev.Type))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(ev.Detail))
	_, _ = h.Write([]byte{0})
	if ev.PlayerID != nil {
		writeInt(*ev.PlayerID)
	} else {
		writeInt(0)
	}
	writeInt(int64(ev.Occurrence))

	id := int64(h.Sum64() & math.MaxInt64)
	if id == 0 {
		id = 1
	}
	return id
}

func Lineup(fixtureID int64, entry feed.LineupEntry) (fixture.Lineup, error) {
	teamID, ok := idOf(entry.Team.ID)
	if !ok || fixtureID <= 0 {
		return fixture.Lineup{}, reject("lineup for fixture %d has no team", fixtureID)
	}

	out := fixture.Lineup{
		FixtureID:   fixtureID,
		TeamID:      teamID,
		Formation:   entry.Formation,
		StartXI:     lineupPlayers(entry.StartXI),
		Substitutes: lineupPlayers(entry.Substitutes),
		Coach:       personSnapshot(entry.Coach),
		Team:        snapshot.Ref{ID: teamID, Name: entry.Team.Name, Image: entry.Team.Logo},
	}
	if c := entry.Team.Colors; c != nil {
		out.Colors = &fixture.KitColors{
			Player:     kitColor(c.Player),
			Goalkeeper: kitColor(c.Goalkeeper),
		}
	}
	return out, nil
}

func lineupPlayers(in []feed.LineupPlayerEntry) []fixture.LineupPlayer {
	out := make([]fixture.LineupPlayer, 0, len(in))
	for _, p := range in {
		id, _ := idOf(p.Player.ID)
		out = append(out, fixture.LineupPlayer{
			ID:     id,
			Name:   p.Player.Name,
			Number: p.Player.Number,
			Pos:    p.Player.Pos,
			Grid:   p.Player.Grid,
		})
	}
	return out
}

func kitColor(in *feed.KitColorEntry) *fixture.KitColor {
	if in == nil {
		return nil
	}
	return &fixture.KitColor{Primary: in.Primary, Number: in.Number, Border: in.Border}
}

// TeamStatistics maps the named statistics onto fixed fields. Unknown
// types only land in Raw, and Raw always holds the whole input list.
func TeamStatistics(fixtureID int64, entry feed.TeamStatisticsEntry) (fixture.TeamStatistic, error) {
	teamID, ok := idOf(entry.Team.ID)
	if !ok || fixtureID <= 0 {
		return fixture.TeamStatistic{}, reject("statistics for fixture %d have no team", fixtureID)
	}

	out := fixture.TeamStatistic{
		FixtureID: fixtureID,
		TeamID:    teamID,
		Raw:       make([]fixture.RawStat, 0, len(entry.Statistics)),
		Team:      snapshot.Ref{ID: teamID, Name: entry.Team.Name, Image: entry.Team.Logo},
	}
	for _, s := range entry.Statistics {
		out.Raw = append(out.Raw, fixture.RawStat{Type: s.Type, Value: s.Value.Value()})
		if field, ok := statisticFields[s.Type]; ok {
			*field.target(&out) = intOf(s.Value)
		}
	}
	return out, nil
}

// FixturePlayerStats flattens one team block of /fixtures/players. Players
// that cannot be keyed are returned as rejections next to the accepted rows.
func FixturePlayerStats(fixtureID int64, entry feed.FixturePlayersTeamEntry) ([]playerstats.FixtureStat, []error) {
	teamID, ok := idOf(entry.Team.ID)
	if !ok || fixtureID <= 0 {
		return nil, []error{reject("player stats for fixture %d have no team", fixtureID)}
	}

	var (
		out  = make([]playerstats.FixtureStat, 0, len(entry.Players))
		errs []error
	)
	teamRef := snapshot.Ref{ID: teamID, Name: entry.Team.Name, Image: entry.Team.Logo}
	for _, p := range entry.Players {
		playerID, ok := idOf(p.Player.ID)
		if !ok {
			errs = append(errs, reject("fixture %d player without id", fixtureID))
			continue
		}
		if len(p.Statistics) == 0 {
			errs = append(errs, reject("fixture %d player %d has no statistics", fixtureID, playerID))
			continue
		}
		stat := p.Statistics[0]
		out = append(out, playerstats.FixtureStat{
			PlayerID:  playerID,
			FixtureID: fixtureID,
			TeamID:    teamID,
			Number:    intOf(stat.Games.Number),
			Position:  stat.Games.Position,
			Metrics:   metricsOf(stat.Games, stat.StatBlocks),
			Player:    personSnapshot(p.Player),
			Team:      teamRef,
		})
	}
	return out, errs
}

func Injury(entry feed.InjuryEntry) (injury.Injury, error) {
	if err := check(entry); err != nil {
		return injury.Injury{}, err
	}
	playerID, ok := idOf(entry.Player.ID)
	if !ok {
		return injury.Injury{}, reject("injury has no player")
	}
	fixtureID, ok := idOf(entry.Fixture.ID)
	if !ok {
		return injury.Injury{}, reject("injury for player %d has no fixture", playerID)
	}
	teamID, ok := idOf(entry.Team.ID)
	if !ok {
		return injury.Injury{}, reject("injury for player %d has no team", playerID)
	}
	return injury.Injury{
		PlayerID:  playerID,
		FixtureID: fixtureID,
		TeamID:    teamID,
		LeagueID:  entry.League.ID,
		Season:    entry.League.Season,
		Type:      entry.Player.Type,
		Reason:    entry.Player.Reason,
		Player:    snapshot.Ref{ID: playerID, Name: entry.Player.Name, Image: entry.Player.Photo},
		Team:      snapshot.Ref{ID: teamID, Name: entry.Team.Name, Image: entry.Team.Logo},
	}, nil
}

func personSnapshot(ref feed.PersonRef) snapshot.Ref {
	id, _ := idOf(ref.ID)
	return snapshot.Ref{ID: id, Name: ref.Name, Image: ref.Photo}
}
