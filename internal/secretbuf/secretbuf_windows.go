//go:build windows

package secretbuf

import (
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// mmapLocked allocates length bytes of committed, zero-filled pages via
// VirtualAlloc and locks them into the working set via VirtualLock so they
// are never written to the page file. Failure is fatal.
func mmapLocked(length int) []byte {
	addr, err := windows.VirtualAlloc(0, uintptr(length), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		logger.Fatal("secretbuf: VirtualAlloc failed", zap.Int("length", length), zap.Error(err))
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)

	if err := windows.VirtualLock(addr, uintptr(length)); err != nil {
		windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		logger.Fatal("secretbuf: VirtualLock failed", zap.Int("length", length), zap.Error(err))
	}

	return data
}

func munmapLocked(data []byte) {
	if len(data) == 0 {
		return
	}

	addr := uintptr(unsafe.Pointer(&data[0]))

	if err := windows.VirtualUnlock(addr, uintptr(len(data))); err != nil {
		logger.Warn("secretbuf: VirtualUnlock failed", zap.Error(err))
	}

	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		logger.Warn("secretbuf: VirtualFree failed", zap.Error(err))
	}
}
