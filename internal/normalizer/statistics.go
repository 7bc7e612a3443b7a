package normalizer

import "github.com/riskibarqy/football-stats/internal/domain/fixture"

type statisticField struct {
	Column string
	target func(*fixture.TeamStatistic) **int
}

// statisticFields maps API statistic types to their dedicated columns.
var statisticFields = map[string]statisticField{
	"Shots on Goal":    {"shots_on_goal", func(s *fixture.TeamStatistic) **int { return &s.ShotsOnGoal }},
	"Shots off Goal":   {"shots_off_goal", func(s *fixture.TeamStatistic) **int { return &s.ShotsOffGoal }},
	"Total Shots":      {"total_shots", func(s *fixture.TeamStatistic) **int { return &s.TotalShots }},
	"Blocked Shots":    {"blocked_shots", func(s *fixture.TeamStatistic) **int { return &s.BlockedShots }},
	"Shots insidebox":  {"shots_inside_box", func(s *fixture.TeamStatistic) **int { return &s.ShotsInsideBox }},
	"Shots outsidebox": {"shots_outside_box", func(s *fixture.TeamStatistic) **int { return &s.ShotsOutsideBox }},
	"Fouls":            {"fouls", func(s *fixture.TeamStatistic) **int { return &s.Fouls }},
	"Corner Kicks":     {"corner_kicks", func(s *fixture.TeamStatistic) **int { return &s.CornerKicks }},
	"Offsides":         {"offsides", func(s *fixture.TeamStatistic) **int { return &s.Offsides }},
	"Ball Possession":  {"ball_possession", func(s *fixture.TeamStatistic) **int { return &s.BallPossession }},
	"Yellow Cards":     {"yellow_cards", func(s *fixture.TeamStatistic) **int { return &s.YellowCards }},
	"Red Cards":        {"red_cards", func(s *fixture.TeamStatistic) **int { return &s.RedCards }},
	"Goalkeeper Saves": {"goalkeeper_saves", func(s *fixture.TeamStatistic) **int { return &s.GoalkeeperSaves }},
	"Total passes":     {"total_passes", func(s *fixture.TeamStatistic) **int { return &s.TotalPasses }},
	"Passes accurate":  {"passes_accurate", func(s *fixture.TeamStatistic) **int { return &s.PassesAccurate }},
	"Passes %":         {"passes_percentage", func(s *fixture.TeamStatistic) **int { return &s.PassesPercentage }},
}

// StatisticColumn reports the dedicated column for an API statistic type.
func StatisticColumn(apiType string) (string, bool) {
	f, ok := statisticFields[apiType]
	return f.Column, ok
}
