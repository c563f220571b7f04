//go:build !amd64

package linalg

func init() {
	AVX2Eligible = false
}
