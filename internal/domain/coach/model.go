package coach

import "time"

type Coach struct {
	ID           int64
	Name         string
	Firstname    string
	Lastname     string
	Age          *int
	BirthDate    *time.Time
	BirthPlace   string
	BirthCountry string
	Nationality  string
	HeightCM     *int
	WeightKG     *int
	Photo        string
	TeamID       *int64
	Career       []CareerEntry
}

type CareerEntry struct {
	TeamID   int64      `json:"team_id"`
	TeamName string     `json:"team_name"`
	TeamLogo string     `json:"team_logo,omitempty"`
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
}
