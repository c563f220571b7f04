// Package f4err defines the sentinel errors the engine reports, in the
// errors.New-plus-errors.Is convention borrowed from lvlath's error
// handling (the teacher repo has no error-return idiom of its own to
// follow here; see DESIGN.md).
package f4err

import "errors"

var (
	// ErrUnluckyPrime means an Application-mode reduction produced a zero
	// row where a prior Trace run predicted a nonzero one. Non-fatal: the
	// caller should retry the whole matrix step with a different prime.
	ErrUnluckyPrime = errors.New("f4gb: unlucky prime")

	// ErrAllocation means a scratch or row allocation failed mid-step.
	// Fatal to the current step; the basis is left untouched.
	ErrAllocation = errors.New("f4gb: allocation failure")

	// ErrOverflowGuard means a prime-size path's accumulator range guard
	// tripped — a misconfigured prime for the selected path. Diagnostic
	// only; f4.Reduce returns it when the FieldBits hint is smaller than
	// the configured prime needs.
	ErrOverflowGuard = errors.New("f4gb: overflow guard tripped")
)
