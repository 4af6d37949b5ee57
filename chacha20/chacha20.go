// Package chacha20 implements the ChaCha20 stream cipher with a 64-bit
// nonce and 64-bit block counter, as specified in
// https://datatracker.ietf.org/doc/html/draft-agl-tls-chacha20poly1305-04
// (the variant this module targets, distinct from RFC 8439's 96-bit-nonce
// / 32-bit-counter layout). Both 128-bit and 256-bit keys are supported.
package chacha20

import (
	"encoding/binary"
	"errors"
	"math/bits"
	"runtime"

	"github.com/pmuens/ctk-go/internal/memzero"
	"github.com/pmuens/ctk-go/internal/secretbuf"
)

// BlockSize is the size (in bytes) of a single ChaCha20 keystream block.
const BlockSize = 64

// ErrInvalidKeyLength is returned from New and NewFromSecret when the key
// is not exactly 16 or 32 bytes.
var ErrInvalidKeyLength = errors.New("chacha20: key must be 16 or 32 bytes")

var (
	constant16 = [4]uint32{0x61707865, 0x3120646e, 0x79622d36, 0x6b206574} // "expand 16-byte k"
	constant32 = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574} // "expand 32-byte k"
)

// Cipher is a stateful instance of the ChaCha20 stream cipher. It is
// exclusively owned by its user; concurrent Process calls on the same
// instance are undefined, per this module's single-threaded-per-instance
// resource model.
type Cipher struct {
	state [16]uint32
	block [16]uint32
	index int
}

// New creates a cipher positioned at block counter 0, with the first
// keystream block already materialized. key must be exactly 16 or 32
// bytes; nonce is always 8 bytes.
func New(key []byte, nonce [8]byte) (*Cipher, error) {
	if len(key) != 16 && len(key) != 32 {
		return nil, ErrInvalidKeyLength
	}

	c := &Cipher{state: newState(key, nonce)}
	c.block = produceBlock(c.state)

	runtime.SetFinalizer(c, (*Cipher).Zeroize)
	return c, nil
}

// NewFromSecret builds a cipher whose key bytes are read from inside a
// live secretbuf.Buffer, within its Expose callback, and never copied onto
// the Go heap outside of the cipher's own state matrix. The Cipher itself,
// state matrix included, is an ordinary heap allocation that holds the key
// words until Zeroize wipes it.
func NewFromSecret(secret *secretbuf.Buffer, nonce [8]byte) (*Cipher, error) {
	length := secret.Len()
	if length != 16 && length != 32 {
		return nil, ErrInvalidKeyLength
	}

	var c *Cipher
	secret.Expose(func(key []byte) {
		c = &Cipher{state: newState(key, nonce)}
		c.block = produceBlock(c.state)
	})

	runtime.SetFinalizer(c, (*Cipher).Zeroize)
	return c, nil
}

// Process returns input XOR keystream, of identical length to input, and
// advances the internal state by exactly len(input) keystream bytes.
// Successive calls form a continuous keystream; Process never fails.
func (c *Cipher) Process(input []byte) []byte {
	output := make([]byte, len(input))

	offset := 0
	for offset < len(input) {
		avail := min(BlockSize-c.index, len(input)-offset)
		for i := 0; i < avail; i++ {
			output[offset+i] = input[offset+i] ^ blockByte(c.block, c.index+i)
		}

		c.index += avail
		offset += avail

		if c.index == BlockSize {
			advanceCounter(&c.state)
			c.block = produceBlock(c.state)
			c.index = 0
		}
	}

	return output
}

// Zeroize wipes the state and block buffers. It is safe to call more than
// once.
func (c *Cipher) Zeroize() {
	memzero.Words(c.state[:])
	memzero.Words(c.block[:])
	c.index = 0
}

// blockByte extracts the i-th little-endian byte of a keystream block.
func blockByte(block [16]uint32, i int) byte {
	return byte(block[i/4] >> (8 * uint(i%4)))
}

// newState builds the initial 16-word ChaCha20 state matrix: constant,
// key (duplicated into both halves for 128-bit keys), zero counter, nonce.
func newState(key []byte, nonce [8]byte) [16]uint32 {
	var state [16]uint32

	if len(key) == 16 {
		copy(state[0:4], constant16[:])
	} else {
		copy(state[0:4], constant32[:])
	}

	offset := len(key)/4 - 4
	for n := 0; n < 4; n++ {
		state[4+n] = binary.LittleEndian.Uint32(key[4*n : 4*n+4])
		state[8+n] = binary.LittleEndian.Uint32(key[4*(n+offset) : 4*(n+offset)+4])
	}

	state[12] = 0
	state[13] = 0
	state[14] = binary.LittleEndian.Uint32(nonce[0:4])
	state[15] = binary.LittleEndian.Uint32(nonce[4:8])

	return state
}

// advanceCounter increments the 64-bit little-endian block counter stored
// across state words 12 (low) and 13 (high).
func advanceCounter(state *[16]uint32) {
	state[12]++
	if state[12] == 0 {
		state[13]++
	}
}

// produceBlock computes the ChaCha20 block function at the current
// counter: 10 double rounds over a working copy of state, then word-wise
// addition of the original state.
func produceBlock(state [16]uint32) [16]uint32 {
	block := state

	for range 10 {
		columnRound(&block)
		diagonalRound(&block)
	}

	for i := range block {
		block[i] += state[i]
	}

	return block
}

func columnRound(b *[16]uint32) {
	quarterRoundAt(b, 0, 4, 8, 12)
	quarterRoundAt(b, 1, 5, 9, 13)
	quarterRoundAt(b, 2, 6, 10, 14)
	quarterRoundAt(b, 3, 7, 11, 15)
}

func diagonalRound(b *[16]uint32) {
	quarterRoundAt(b, 0, 5, 10, 15)
	quarterRoundAt(b, 1, 6, 11, 12)
	quarterRoundAt(b, 2, 7, 8, 13)
	quarterRoundAt(b, 3, 4, 9, 14)
}

func quarterRoundAt(b *[16]uint32, x, y, z, w int) {
	b[x], b[y], b[z], b[w] = quarterRound(b[x], b[y], b[z], b[w])
}

// quarterRound is the ChaCha ARX mixing primitive: add, rotate, xor, with
// left-rotations by 16, 12, 8, 7.
func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 16)

	c += d
	b ^= c
	b = bits.RotateLeft32(b, 12)

	a += b
	d ^= a
	d = bits.RotateLeft32(d, 8)

	c += d
	b ^= c
	b = bits.RotateLeft32(b, 7)

	return a, b, c, d
}
