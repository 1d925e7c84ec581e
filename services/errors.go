// services/errors.go
package services

import "errors"

// Expected failure modes of the progression engine. Handlers map these to
// HTTP statuses; none of them is a panic or a silent fallback.
var (
	// ErrInvalidChallengeID: input did not canonicalize to the challenge id
	// grammar. Never coerced to a guessed value.
	ErrInvalidChallengeID = errors.New("invalid challenge id")

	// ErrUnknownChallenge: well-formed id absent from the catalog. The engine
	// fails rather than fabricating placeholder content.
	ErrUnknownChallenge = errors.New("unknown challenge")

	// ErrUnknownStone: well-formed stone id absent from the catalog.
	ErrUnknownStone = errors.New("unknown stone")

	// ErrStorageUnavailable: a store call failed or timed out. Recoverable:
	// progress is derivable from the completion log, so a retry converges.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
