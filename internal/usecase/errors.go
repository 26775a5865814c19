package usecase

import (
	"errors"

	"github.com/riskibarqy/sports-league/internal/domain/repoerr"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = repoerr.ErrNotFound
	ErrConflict              = repoerr.ErrConflict
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
