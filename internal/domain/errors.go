package domain

import "errors"

var (
	// ErrInvalidTransition means the requested status is not reachable from
	// the offer's (or contract's) current status.
	ErrInvalidTransition = errors.New("transition not allowed from current status")

	// ErrMissingJustification means a score B/C or rejection was requested
	// without a non-empty reason.
	ErrMissingJustification = errors.New("a reason is required for this decision")

	// ErrInvalidInput covers negative amounts, empty equipment lists and
	// similar pre-write validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConcurrentModification means the offer row changed since it was
	// read; the caller must re-read and retry.
	ErrConcurrentModification = errors.New("offer was modified concurrently, re-read and retry")

	// ErrCalculationFailure means no coefficient/rate table was available at
	// all. Distinct from "no matching tier", which has a defined fallback.
	ErrCalculationFailure = errors.New("financial calculation failed")

	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)
