package fixture

import "strings"

// Status is the canonical short match status.
type Status string

const (
	StatusTBD            Status = "TBD"
	StatusNotStarted     Status = "NS"
	StatusFirstHalf      Status = "1H"
	StatusHalfTime       Status = "HT"
	StatusSecondHalf     Status = "2H"
	StatusExtraTime      Status = "ET"
	StatusBreakTime      Status = "BT"
	StatusPenalties      Status = "P"
	StatusSuspended      Status = "SUSP"
	StatusInterrupted    Status = "INT"
	StatusFinished       Status = "FT"
	StatusAfterExtraTime Status = "AET"
	StatusAfterPenalties Status = "PEN"
	StatusPostponed      Status = "PST"
	StatusCancelled      Status = "CANC"
	StatusAbandoned      Status = "ABD"
	StatusAwarded        Status = "AWD"
	StatusWalkover       Status = "WO"
	StatusLive           Status = "LIVE"
)

var knownStatuses = map[Status]struct{}{
	StatusTBD: {}, StatusNotStarted: {}, StatusFirstHalf: {}, StatusHalfTime: {},
	StatusSecondHalf: {}, StatusExtraTime: {}, StatusBreakTime: {}, StatusPenalties: {},
	StatusSuspended: {}, StatusInterrupted: {}, StatusFinished: {}, StatusAfterExtraTime: {},
	StatusAfterPenalties: {}, StatusPostponed: {}, StatusCancelled: {}, StatusAbandoned: {},
	StatusAwarded: {}, StatusWalkover: {}, StatusLive: {},
}

// ParseStatus reports false for codes outside the closed enum.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := knownStatuses[s]
	return s, ok
}

func (s Status) IsLive() bool {
	switch s {
	case StatusFirstHalf, StatusHalfTime, StatusSecondHalf, StatusExtraTime,
		StatusBreakTime, StatusPenalties, StatusSuspended, StatusInterrupted, StatusLive:
		return true
	default:
		return false
	}
}

func (s Status) IsFinished() bool {
	switch s {
	case StatusFinished, StatusAfterExtraTime, StatusAfterPenalties, StatusAwarded, StatusWalkover:
		return true
	default:
		return false
	}
}

// AllStatuses returns the enum in declaration order. Used by the schema check.
func AllStatuses() []Status {
	return []Status{
		StatusTBD, StatusNotStarted, StatusFirstHalf, StatusHalfTime, StatusSecondHalf,
		StatusExtraTime, StatusBreakTime, StatusPenalties, StatusSuspended, StatusInterrupted,
		StatusFinished, StatusAfterExtraTime, StatusAfterPenalties, StatusPostponed,
		StatusCancelled, StatusAbandoned, StatusAwarded, StatusWalkover, StatusLive,
	}
}
