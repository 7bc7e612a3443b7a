package usecase

// Counts is the success/error pair every orchestrator reports.
type Counts struct {
	Success int `json:"success"`
	Errors  int `json:"errors"`
}

func (c *Counts) Add(other Counts) {
	c.Success += other.Success
	c.Errors += other.Errors
}

// failWrite moves the optimistically counted successes of a batch whose
// write failed into the error tally.
func (c *Counts) failWrite() {
	c.Errors += c.Success
	c.Success = 0
}

// UnitOutcome is the result of one league season inside a sweep.
type UnitOutcome struct {
	LeagueID int64  `json:"league_id"`
	Season   int    `json:"season"`
	Success  int    `json:"success"`
	Errors   int    `json:"errors"`
	Error    string `json:"error,omitempty"`
}

type SweepResult struct {
	Domain  string        `json:"domain"`
	Success int           `json:"success"`
	Errors  int           `json:"errors"`
	Units   []UnitOutcome `json:"units"`
}
