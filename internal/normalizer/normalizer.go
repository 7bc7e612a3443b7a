// Package normalizer turns decoded feed entries into flat domain records.
// Every function is pure: it either returns a record or an error wrapping
// ErrRejected, and never touches storage.
package normalizer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/domain/fixture"
)

var (
	ErrRejected      = errors.New("entry rejected")
	ErrUnknownStatus = errors.New("unknown match status")
)

var validate = validator.New()

func reject(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRejected, fmt.Sprintf(format, args...))
}

// check runs the struct tags of a feed entry.
func check(entry any) error {
	if err := validate.Struct(entry); err != nil {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return nil
}

// ParseDate reads a YYYY-MM-DD date. Anything else is absent.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil
	}
	return &t
}

// ParseTimestamp reads an RFC 3339 kickoff time, falling back to a bare date.
func ParseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		utc := t.UTC()
		return &utc
	}
	return ParseDate(raw)
}

// ParsePercent turns "42%" or "42" into 42. "N/A", empty input and any
// other non-numeric text are absent, never zero.
func ParsePercent(raw string) *int {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// ParseMeasure reads values such as "180 cm" or "75 kg".
func ParseMeasure(raw string) *int {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	return ParsePercent(fields[0])
}

// MatchStatus maps a source status code onto the closed enum.
func MatchStatus(short string) (fixture.Status, error) {
	status, ok := fixture.ParseStatus(short)
	if !ok {
		return "", fmt.Errorf("%w: %w %q", ErrRejected, ErrUnknownStatus, short)
	}
	return status, nil
}

func intOf(s feed.Scalar) *int {
	text, ok := s.Text()
	if !ok {
		return nil
	}
	return ParsePercent(text)
}

func floatOf(s feed.Scalar) *float64 {
	text, ok := s.Text()
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func idOf(id *int64) (int64, bool) {
	if id == nil || *id <= 0 {
		return 0, false
	}
	return *id, true
}

func optionalID(id *int64) *int64 {
	v, ok := idOf(id)
	if !ok {
		return nil
	}
	return &v
}

func trimmedPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil
	}
	return &v
}
