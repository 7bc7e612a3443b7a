package usecase

import (
	"context"
	"fmt"
)

type TimezoneService struct {
	deps
}

// Refresh replaces the stored timezone list with the source's.
func (s *TimezoneService) Refresh(ctx context.Context) (Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TimezoneService.Refresh")
	defer span.End()

	names, err := s.source.Timezones(ctx)
	if err != nil {
		return Counts{Errors: 1}, fmt.Errorf("fetch timezones: %w", err)
	}
	n, err := s.repos.Timezones.ReplaceAll(ctx, names)
	if err != nil {
		return Counts{Errors: len(names)}, fmt.Errorf("replace timezones: %w", err)
	}
	return Counts{Success: int(n)}, nil
}
