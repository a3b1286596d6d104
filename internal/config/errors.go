package config

import "errors"

// Sentinel kinds so callers can errors.Is without parsing messages.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
