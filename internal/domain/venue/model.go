package venue

type Venue struct {
	ID       int64
	Name     string
	Address  string
	City     string
	Country  string
	Capacity *int
	Surface  string
	Image    string
}
