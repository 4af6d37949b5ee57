// Package memzero provides compiler-opaque zeroization helpers shared by
// internal/secretbuf and chacha20. Go has no volatile keyword; looping over
// the slice and finishing with runtime.KeepAlive is the idiomatic substitute
// used across the Go crypto ecosystem to discourage dead-store elimination.
package memzero

import "runtime"

// Bytes overwrites every byte of b with zero.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Words overwrites every element of w with zero.
func Words(w []uint32) {
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}
