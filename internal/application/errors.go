package application

import (
	"errors"

	"kawase-service/internal/domain"
)

var ErrNotFound = domain.ErrNotFound
var ErrBadRequest = errors.New("bad request")

// Validation outcomes surfaced to the user as warnings.
var (
	ErrZeroAmount  = errors.New("enter an amount to convert")
	ErrBlankPrompt = errors.New("enter a question for the assistant")
)

var ErrRateUnavailable = errors.New("exchange rate is not available")

// Upstream failures; the cause is wrapped.
var (
	ErrRateFetch   = errors.New("fetch live rate")
	ErrSeriesFetch = errors.New("fetch rate series")
	ErrPrediction  = errors.New("prediction request")
)

// IsWarning reports whether err is a validation outcome rather than a failure.
func IsWarning(err error) bool {
	return errors.Is(err, ErrZeroAmount) || errors.Is(err, ErrBlankPrompt)
}
