//go:build unix

package secretbuf

import (
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// mmapLocked allocates length bytes of anonymous, private, zero-filled
// pages and locks them into physical memory so the kernel never writes
// them to swap. Failure is fatal.
func mmapLocked(length int) []byte {
	data, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		logger.Fatal("secretbuf: mmap failed", zap.Int("length", length), zap.Error(err))
	}

	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		logger.Fatal("secretbuf: mlock failed", zap.Int("length", length), zap.Error(err))
	}

	return data
}

func munmapLocked(data []byte) {
	if len(data) == 0 {
		return
	}

	if err := unix.Munlock(data); err != nil {
		logger.Warn("secretbuf: munlock failed", zap.Error(err))
	}

	if err := unix.Munmap(data); err != nil {
		logger.Warn("secretbuf: munmap failed", zap.Error(err))
	}
}
