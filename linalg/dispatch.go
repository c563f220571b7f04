package linalg

import (
	"os"
	"strconv"
)

// AVX2Eligible reports whether the current CPU supports the AVX2 inner
// loop the 31-bit path's reduction can use (spec §4.4). Detection is
// runtime, not build-time — only the underlying instruction availability
// is a build-time capability; the engine itself always runs, falling back
// to the plain scalar loop when AVX2Eligible is false. Platform files set
// this at init time (golang.org/x/sys/cpu on amd64, always-false
// elsewhere).
var AVX2Eligible bool

// NoSimdEnv reports whether the F4_NO_SIMD environment variable asks the
// engine to skip the grouped inner loop even on eligible CPUs, so the
// scalar fallback can be tested on any machine.
func NoSimdEnv() bool {
	val := os.Getenv("F4_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
