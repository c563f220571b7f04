//go:build amd64

package linalg

import "golang.org/x/sys/cpu"

func init() {
	AVX2Eligible = cpu.X86.HasAVX2
}
