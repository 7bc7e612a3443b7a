package httpapi

import (
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/fixture"
	"github.com/riskibarqy/football-stats/internal/domain/team"
)

type teamDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Country  string `json:"country,omitempty"`
	Founded  *int   `json:"founded,omitempty"`
	National bool   `json:"national"`
	Logo     string `json:"logo,omitempty"`
	VenueID  *int64 `json:"venue_id,omitempty"`
}

type scoreDTO struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type fixtureDTO struct {
	ID          int64               `json:"id"`
	LeagueID    int64               `json:"league_id"`
	Season      int                 `json:"season"`
	Round       string              `json:"round,omitempty"`
	Referee     string              `json:"referee,omitempty"`
	KickoffAt   *time.Time          `json:"kickoff_at,omitempty"`
	Timezone    string              `json:"timezone,omitempty"`
	StatusShort string              `json:"status_short"`
	StatusLong  string              `json:"status_long,omitempty"`
	Elapsed     *int                `json:"elapsed,omitempty"`
	VenueID     *int64              `json:"venue_id,omitempty"`
	HomeTeamID  int64               `json:"home_team_id"`
	AwayTeamID  int64               `json:"away_team_id"`
	Goals       scoreDTO            `json:"goals"`
	Score       map[string]scoreDTO `json:"score"`
	Events      []eventDTO          `json:"events,omitempty"`
}

type eventDTO struct {
	ID       int64  `json:"id"`
	TeamID   int64  `json:"team_id"`
	PlayerID *int64 `json:"player_id,omitempty"`
	AssistID *int64 `json:"assist_id,omitempty"`
	Elapsed  int    `json:"elapsed"`
	Extra    *int   `json:"extra,omitempty"`
	Type     string `json:"type"`
	Detail   string `json:"detail,omitempty"`
	Comments string `json:"comments,omitempty"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:       v.ID,
		Name:     v.Name,
		Code:     v.Code,
		Country:  v.Country,
		Founded:  v.Founded,
		National: v.National,
		Logo:     v.Logo,
		VenueID:  v.VenueID,
	}
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:          v.ID,
		LeagueID:    v.LeagueID,
		Season:      v.Season,
		Round:       v.Round,
		Referee:     v.Referee,
		KickoffAt:   v.KickoffAt,
		Timezone:    v.Timezone,
		StatusShort: string(v.StatusShort),
		StatusLong:  v.StatusLong,
		Elapsed:     v.Elapsed,
		VenueID:     v.VenueID,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		Goals:       scoreDTO{Home: v.HomeGoals, Away: v.AwayGoals},
		Score: map[string]scoreDTO{
			"halftime":  {Home: v.Score.HalftimeHome, Away: v.Score.HalftimeAway},
			"fulltime":  {Home: v.Score.FulltimeHome, Away: v.Score.FulltimeAway},
			"extratime": {Home: v.Score.ExtratimeHome, Away: v.Score.ExtratimeAway},
			"penalty":   {Home: v.Score.PenaltyHome, Away: v.Score.PenaltyAway},
		},
	}
}

func eventToDTO(v fixture.Event) eventDTO {
	return eventDTO{
		ID:       v.ID,
		TeamID:   v.TeamID,
		PlayerID: v.PlayerID,
		AssistID: v.AssistID,
		Elapsed:  v.Elapsed,
		Extra:    v.Extra,
		Type:     v.Type,
		Detail:   v.Detail,
		Comments: v.Comments,
	}
}
