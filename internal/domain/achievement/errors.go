package achievement

import "errors"

// Sentinel kinds for achievement errors.
var (
	ErrUnknownAchievement = errors.New("unknown achievement")
)
