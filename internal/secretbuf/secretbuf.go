// Package secretbuf provides a page-aligned, locked, auto-zeroized byte
// region for holding key material and other secrets. Bytes copied into a
// Buffer live in locked pages rather than in ordinary, pageable Go heap
// memory.
package secretbuf

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/pmuens/ctk-go/internal/memzero"
)

var logger = zap.NewNop()

// SetLogger installs the zap logger used to report fatal allocation and
// locking failures. The default is a no-op logger so importing this package
// never produces unwanted output; callers that want visibility into fatal
// secretbuf failures (which still terminate the process either way) should
// call this once during startup.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Buffer is a locked, non-swappable region of memory that is zeroed on
// release. Between New and Burn the region is readable and writable only
// through Expose. Once burned, the region is unmapped and any further
// Expose call panics.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	burned bool
}

// New allocates a region of exactly length bytes from the OS as anonymous,
// private pages, locks it into physical memory, and returns it already
// zero-initialized. Allocation or locking failure is fatal: secret material
// must never silently fall back to pageable memory.
func New(length int) *Buffer {
	data := mmapLocked(length)

	b := &Buffer{data: data}
	runtime.SetFinalizer(b, (*Buffer).Burn)
	return b
}

// Expose invokes mutator with scoped mutable access to the underlying
// bytes. It panics if the buffer has already been burned.
func (b *Buffer) Expose(mutator func([]byte)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.burned {
		panic("secretbuf: use of burned buffer")
	}

	mutator(b.data)
}

// Burn overwrites the region with zero using a write the compiler must not
// elide, then releases the pages. It is idempotent.
func (b *Buffer) Burn() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.burned {
		return
	}

	memzero.Bytes(b.data)
	munmapLocked(b.data)
	b.data = nil
	b.burned = true

	runtime.SetFinalizer(b, nil)
}

// Len reports the buffer's length in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.data)
}
