// Package snapshot holds the denormalized copies of related entities that
// are stored next to their ids at write time and never corrected later.
package snapshot

// Ref is a point-in-time copy of a team, player or coach.
type Ref struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

func (r Ref) IsZero() bool {
	return r.ID == 0 && r.Name == "" && r.Image == ""
}
