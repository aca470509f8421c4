package statsservice

import "errors"

var (
	// ErrLeagueNotFound is returned when an operation names a league that does not exist.
	ErrLeagueNotFound = errors.New("league not found")

	// ErrUnknownStatKey is returned for a ranking statistic outside the supported set.
	ErrUnknownStatKey = errors.New("unknown stat key")

	// ErrInvalidLeagueName is returned when a league name is blank.
	ErrInvalidLeagueName = errors.New("league name must not be empty")

	// ErrGameNotFound is returned when a league assignment names a game that was never stored.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidGameRecord is returned when a game record lacks a date, a team, or a team total.
	ErrInvalidGameRecord = errors.New("invalid game record")
)
