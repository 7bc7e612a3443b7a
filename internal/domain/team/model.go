package team

// Team is a club or national side. VenueID is a soft link and is not
// enforced by storage.
type Team struct {
	ID       int64
	Name     string
	Code     string
	Country  string
	Founded  *int
	National bool
	Logo     string
	VenueID  *int64
}
