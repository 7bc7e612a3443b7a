package player

import "time"

type Player struct {
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
	Injured      bool
	Photo        string
	Position     string
}
