package usecase

import (
	"errors"

	"github.com/riskibarqy/football-stats/internal/normalizer"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrRejected              = normalizer.ErrRejected
	ErrUnresolvedDependency  = errors.New("unresolved dependency")
)
