package country

// Country is keyed by its short code (e.g. "GB", "ID").
type Country struct {
	Code string
	Name string
	Flag string
}
