package normalizer

import (
	"strings"

	"github.com/riskibarqy/football-stats/internal/domain/coach"
	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/player"
	"github.com/riskibarqy/football-stats/internal/domain/playerstats"
	"github.com/riskibarqy/football-stats/internal/domain/snapshot"
)

func Player(info feed.PlayerInfo) (player.Player, error) {
	if err := check(info); err != nil {
		return player.Player{}, err
	}
	return player.Player{
		ID:           info.ID,
		Name:         strings.TrimSpace(info.Name),
		Firstname:    info.Firstname,
		Lastname:     info.Lastname,
		Age:          info.Age,
		BirthDate:    ParseDate(info.Birth.Date),
		BirthPlace:   info.Birth.Place,
		BirthCountry: info.Birth.Country,
		Nationality:  info.Nationality,
		HeightCM:     measureOf(info.Height),
		WeightKG:     measureOf(info.Weight),
		Injured:      info.Injured,
		Photo:        info.Photo,
		Position:     info.Position,
	}, nil
}

// PlayerFromFragment builds a minimal player from an embedded reference.
func PlayerFromFragment(ref feed.PersonRef) (player.Player, bool) {
	id, ok := idOf(ref.ID)
	name := strings.TrimSpace(ref.Name)
	if !ok || name == "" {
		return player.Player{}, false
	}
	return player.Player{ID: id, Name: name, Photo: ref.Photo}, true
}

func Coach(entry feed.CoachEntry) (coach.Coach, error) {
	if err := check(entry); err != nil {
		return coach.Coach{}, err
	}
	career := make([]coach.CareerEntry, 0, len(entry.Career))
	for _, c := range entry.Career {
		id, ok := idOf(c.Team.ID)
		if !ok {
			continue
		}
		career = append(career, coach.CareerEntry{
			TeamID:   id,
			TeamName: c.Team.Name,
			TeamLogo: c.Team.Logo,
			Start:    ParseDate(c.Start),
			End:      ParseDate(c.End),
		})
	}
	return coach.Coach{
		ID:           entry.ID,
		Name:         strings.TrimSpace(entry.Name),
		Firstname:    entry.Firstname,
		Lastname:     entry.Lastname,
		Age:          entry.Age,
		BirthDate:    ParseDate(entry.Birth.Date),
		BirthPlace:   entry.Birth.Place,
		BirthCountry: entry.Birth.Country,
		Nationality:  entry.Nationality,
		HeightCM:     measureOf(entry.Height),
		WeightKG:     measureOf(entry.Weight),
		Photo:        entry.Photo,
		TeamID:       optionalID(entry.Team.ID),
		Career:       career,
	}, nil
}

// SeasonStat flattens one statistics block of a /players entry. The
// league and season fall back to the query context when the block omits
// them.
func SeasonStat(playerID int64, entry feed.SeasonStatEntry, leagueID int64, season int) (playerstats.SeasonStat, error) {
	teamID, ok := idOf(entry.Team.ID)
	if !ok {
		return playerstats.SeasonStat{}, reject("player %d season stats have no team", playerID)
	}
	if id, ok := idOf(entry.League.ID); ok {
		leagueID = id
	}
	if entry.League.Season != nil && *entry.League.Season > 0 {
		season = *entry.League.Season
	}
	if playerID <= 0 || leagueID <= 0 || season <= 0 {
		return playerstats.SeasonStat{}, reject("player %d season stats have no league season", playerID)
	}

	return playerstats.SeasonStat{
		PlayerID:    playerID,
		TeamID:      teamID,
		LeagueID:    leagueID,
		Season:      season,
		Appearances: intOf(entry.Games.Appearences),
		Lineups:     intOf(entry.Games.Lineups),
		SubIn:       intOf(entry.Substitutes.In),
		SubOut:      intOf(entry.Substitutes.Out),
		Bench:       intOf(entry.Substitutes.Bench),
		Position:    entry.Games.Position,
		Metrics:     metricsOf(entry.Games, entry.StatBlocks),
		Team:        snapshot.Ref{ID: teamID, Name: entry.Team.Name, Image: entry.Team.Logo},
	}, nil
}

func metricsOf(games feed.GamesEntry, b feed.StatBlocks) playerstats.Metrics {
	return playerstats.Metrics{
		Minutes:              intOf(games.Minutes),
		Rating:               floatOf(games.Rating),
		Captain:              games.Captain,
		Substitute:           games.Substitute,
		ShotsTotal:           intOf(b.Shots.Total),
		ShotsOn:              intOf(b.Shots.On),
		GoalsTotal:           intOf(b.Goals.Total),
		GoalsConceded:        intOf(b.Goals.Conceded),
		GoalsAssists:         intOf(b.Goals.Assists),
		GoalsSaves:           intOf(b.Goals.Saves),
		PassesTotal:          intOf(b.Passes.Total),
		PassesKey:            intOf(b.Passes.Key),
		PassesAccuracy:       intOf(b.Passes.Accuracy),
		TacklesTotal:         intOf(b.Tackles.Total),
		TacklesBlocks:        intOf(b.Tackles.Blocks),
		TacklesInterceptions: intOf(b.Tackles.Interceptions),
		DuelsTotal:           intOf(b.Duels.Total),
		DuelsWon:             intOf(b.Duels.Won),
		DribblesAttempts:     intOf(b.Dribbles.Attempts),
		DribblesSuccess:      intOf(b.Dribbles.Success),
		DribblesPast:         intOf(b.Dribbles.Past),
		FoulsDrawn:           intOf(b.Fouls.Drawn),
		FoulsCommitted:       intOf(b.Fouls.Committed),
		CardsYellow:          intOf(b.Cards.Yellow),
		CardsYellowRed:       intOf(b.Cards.YellowRed),
		CardsRed:             intOf(b.Cards.Red),
		PenaltyWon:           intOf(b.Penalty.Won),
		PenaltyCommitted:     intOf(b.Penalty.Committed),
		PenaltyScored:        intOf(b.Penalty.Scored),
		PenaltyMissed:        intOf(b.Penalty.Missed),
		PenaltySaved:         intOf(b.Penalty.Saved),
		Offsides:             intOf(b.Offsides),
	}
}

func measureOf(s feed.Scalar) *int {
	text, ok := s.Text()
	if !ok {
		return nil
	}
	return ParseMeasure(text)
}
