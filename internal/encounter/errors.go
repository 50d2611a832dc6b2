package encounter

import "errors"

// Sentinel errors returned by the trigger entry points.
var (
	ErrConfigurationInvalid  = errors.New("encounter definition is invalid")
	ErrDependencyUnavailable = errors.New("npc spawn service is not ready")
	ErrSpawnPointExhausted   = errors.New("no spawn point available")
	ErrIntersecting          = errors.New("position intersects an active encounter")
	ErrEventNotFound         = errors.New("encounter definition not found")
	ErrPositionInvalid       = errors.New("invalid trigger position")
	ErrLoopStopped           = errors.New("encounter loop stopped")
)
