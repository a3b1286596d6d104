package repository

import "errors"

// Sentinel kinds for result store errors.
var (
	ErrNotFound             = errors.New("competition not found")
	ErrDuplicateCompetition = errors.New("competition already recorded")
	ErrUnknownParticipant   = errors.New("score references unknown participant")
	ErrEmptyID              = errors.New("empty id")
	ErrInvalidRank          = errors.New("rank must be positive")
)
