// Package curve25519 implements X25519 scalar multiplication on Curve25519
// (RFC 7748), built from field arithmetic in GF(2^255-19) over a 10-limb,
// alternating 26/25-bit redundant representation and a constant-time
// Montgomery ladder.
package curve25519

// FieldElement is a value in GF(2^255-19), represented redundantly as 10
// limbs: even-indexed limbs nominally carry 26 bits, odd-indexed limbs 25
// bits. Limb i represents the coefficient of 2^ceil(25.5*i). Limbs may
// overflow their nominal width between operations; contract reduces back
// to canonical form. Values are immutable once produced; every operation
// below returns a new FieldElement rather than mutating its receiver.
type FieldElement struct {
	limbs [10]uint64
}

var (
	fieldZero = FieldElement{}
	fieldOne  = FieldElement{limbs: [10]uint64{1}}

	// eightTimesPrime is 8p expressed as an exact limb pattern. Adding it
	// to the minuend before a limb-wise subtraction avoids underflow in
	// the u64 limbs while leaving the represented field value unchanged.
	eightTimesPrime = FieldElement{limbs: [10]uint64{
		(8 << 26) - 152, // 152 == 19 << 3
		(8 << 25) - 8,
		(8 << 26) - 8,
		(8 << 25) - 8,
		(8 << 26) - 8,
		(8 << 25) - 8,
		(8 << 26) - 8,
		(8 << 25) - 8,
		(8 << 26) - 8,
		(8 << 25) - 8,
	}}
)

// fieldElementFromBytes unpacks a little-endian 32-byte array into a
// FieldElement, honoring the alternating 26/25-bit limb widths. The high
// bit of byte 31 is ignored by convention.
func fieldElementFromBytes(k [32]byte) FieldElement {
	return FieldElement{limbs: [10]uint64{
		uint64(k[0])>>0 | uint64(k[1])<<8 | uint64(k[2])<<16 | uint64(k[3]&0b11)<<24,

		uint64(k[3])>>2 | uint64(k[4])<<6 | uint64(k[5])<<14 | uint64(k[6]&0b111)<<22,

		uint64(k[6])>>3 | uint64(k[7])<<5 | uint64(k[8])<<13 | uint64(k[9]&0b11111)<<21,

		uint64(k[9])>>5 | uint64(k[10])<<3 | uint64(k[11])<<11 | uint64(k[12]&0b111111)<<19,

		uint64(k[12])>>6 | uint64(k[13])<<2 | uint64(k[14])<<10 | uint64(k[15])<<18,

		uint64(k[16])>>0 | uint64(k[17])<<8 | uint64(k[18])<<16 | uint64(k[19]&0b1)<<24,

		uint64(k[19])>>1 | uint64(k[20])<<7 | uint64(k[21])<<15 | uint64(k[22]&0b111)<<23,

		uint64(k[22])>>3 | uint64(k[23])<<5 | uint64(k[24])<<13 | uint64(k[25]&0b1111)<<21,

		uint64(k[25])>>4 | uint64(k[26])<<4 | uint64(k[27])<<12 | uint64(k[28]&0b111111)<<20,

		uint64(k[28])>>6 | uint64(k[29])<<2 | uint64(k[30])<<10 | uint64(k[31]&0b1111111)<<18,
	}}
}

// Bytes contracts e to canonical form and packs it little-endian across
// the limb boundaries into a 32-byte array.
func (e FieldElement) Bytes() [32]byte {
	a := e.contract()
	v := a.limbs

	return [32]byte{
		byte(v[0] >> 0),
		byte(v[0] >> 8),
		byte(v[0] >> 16),
		byte(v[0]>>24) | byte((v[1]&0b111111)<<2),
		byte(v[1] >> 6),
		byte(v[1] >> 14),
		byte(v[1]>>22) | byte((v[2]&0b11111)<<3),
		byte(v[2] >> 5),
		byte(v[2] >> 13),
		byte(v[2]>>21) | byte((v[3]&0b111)<<5),
		byte(v[3] >> 3),
		byte(v[3] >> 11),
		byte(v[3]>>19) | byte((v[4]&0b11)<<6),
		byte(v[4] >> 2),
		byte(v[4] >> 10),
		byte(v[4] >> 18),
		byte(v[5] >> 0),
		byte(v[5] >> 8),
		byte(v[5] >> 16),
		byte(v[5]>>24) | byte((v[6]&0b1111111)<<1),
		byte(v[6] >> 7),
		byte(v[6] >> 15),
		byte(v[6]>>23) | byte((v[7]&0b11111)<<3),
		byte(v[7] >> 5),
		byte(v[7] >> 13),
		byte(v[7]>>21) | byte((v[8]&0b1111)<<4),
		byte(v[8] >> 4),
		byte(v[8] >> 12),
		byte(v[8]>>20) | byte((v[9]&0b11)<<6),
		byte(v[9] >> 2),
		byte(v[9] >> 10),
		byte(v[9] >> 18), // limb 9 is 25 bits, so the msb here is always 0
	}
}

// add returns a + b, contracted.
func (a FieldElement) add(b FieldElement) FieldElement {
	var c FieldElement
	for i := range c.limbs {
		c.limbs[i] = a.limbs[i] + b.limbs[i]
	}
	return c.contract()
}

// sub returns a - b, contracted. It adds eightTimesPrime to a first so the
// limb-wise subtraction that follows never underflows a u64 limb.
func (a FieldElement) sub(b FieldElement) FieldElement {
	var c FieldElement
	for i := range c.limbs {
		c.limbs[i] = a.limbs[i] + eightTimesPrime.limbs[i] - b.limbs[i]
	}
	return c.contract()
}

// mul returns a * b via schoolbook limb multiplication into 20
// accumulators, folded back into 10 limbs using 2^255 == 19 (mod p), then
// contracted.
func (a FieldElement) mul(b FieldElement) FieldElement {
	var wide [20]uint64

	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			idx := i + j
			coefficient := uint64(1)
			// idx even and i odd implies j odd: the fractional 25.5-bit
			// alternation puts an extra factor of 2 here.
			if idx&1 == 0 && i&1 == 1 {
				coefficient = 2
			}
			wide[idx] += a.limbs[i] * b.limbs[j] * coefficient
		}
	}

	var c FieldElement
	for k := 0; k < 10; k++ {
		c.limbs[k] = wide[k] + wide[k+10]*19
	}

	return c.contract()
}

// mulScalar returns a * s, contracted, for a small constant s.
func (a FieldElement) mulScalar(s uint64) FieldElement {
	var c FieldElement
	for i := range c.limbs {
		c.limbs[i] = a.limbs[i] * s
	}
	return c.contract()
}

// inverse returns a^-1 via Fermat's little theorem, a^(p-2), using the
// standard Curve25519 addition chain of squarings and multiplications.
func (a FieldElement) inverse() FieldElement {
	squareN := func(x FieldElement, n int) FieldElement {
		for i := 0; i < n; i++ {
			x = x.mul(x)
		}
		return x
	}

	x2 := a.mul(a)
	x4 := x2.mul(x2)
	x8 := x4.mul(x4)
	x9 := x8.mul(a)
	x11 := x9.mul(x2)
	x22 := x11.mul(x11)

	y5_0 := x22.mul(x9)          // x^(2^5   - 2^0  )
	y10_5 := squareN(y5_0, 5)    // x^(2^10  - 2^5  )
	y10_0 := y10_5.mul(y5_0)     // x^(2^10  - 2^0  )
	y20_10 := squareN(y10_0, 10) // x^(2^20  - 2^10 )
	y20_0 := y20_10.mul(y10_0)   // x^(2^20  - 2^0  )
	y40_20 := squareN(y20_0, 20) // x^(2^40  - 2^20 )
	y40_0 := y40_20.mul(y20_0)   // x^(2^40  - 2^0  )
	y50_10 := squareN(y40_0, 10) // x^(2^50  - 2^10 )
	y50_0 := y50_10.mul(y10_0)   // x^(2^50  - 2^0  )
	y100_50 := squareN(y50_0, 50)   // x^(2^100 - 2^50 )
	y100_0 := y100_50.mul(y50_0)    // x^(2^100 - 2^0  )
	y200_100 := squareN(y100_0, 100) // x^(2^200 - 2^100)
	y200_0 := y200_100.mul(y100_0)   // x^(2^200 - 2^0  )
	y250_50 := squareN(y200_0, 50)   // x^(2^250 - 2^50 )
	y250_0 := y250_50.mul(y50_0)     // x^(2^250 - 2^0  )
	y255_5 := squareN(y250_0, 5)     // x^(2^255 - 2^5  )

	return y255_5.mul(x11) // x^(2^255 - 21)
}

// swap constant-time conditionally swaps a and b: flag must be 0 or 1.
// swap(0, a, b) == (a, b); swap(1, a, b) == (b, a). It is branch-free, as
// required of every operation inside the ladder.
func swap(flag uint64, a, b FieldElement) (FieldElement, FieldElement) {
	mask := -flag // 0 -> all-zero mask, 1 -> all-one mask

	var c, d FieldElement
	for i := range c.limbs {
		t := mask & (a.limbs[i] ^ b.limbs[i])
		c.limbs[i] = a.limbs[i] ^ t
		d.limbs[i] = b.limbs[i] ^ t
	}
	return c, d
}

// reduce carry-propagates limbs 0..8 into their successors according to
// the nominal 26/25-bit alternation, without touching limb 9's overflow.
func (e FieldElement) reduce() FieldElement {
	c := e
	for i := 0; i < 9; i++ {
		shift := uint(26)
		if i&1 == 1 {
			shift = 25
		}
		c.limbs[i+1] += c.limbs[i] >> shift
		c.limbs[i] &= (1 << shift) - 1
	}
	return c
}

// contract reduces a potentially-overflowing redundant representation to
// the unique canonical form with each even limb below 2^26, each odd limb
// below 2^25, and total value in [0, p). It uses only arithmetic and
// bitwise operations -- no value-dependent branches -- per this module's
// constant-time requirements.
func (e FieldElement) contract() FieldElement {
	c := e

	c = c.reduce()
	c.limbs[0] += (c.limbs[9] >> 25) * 19
	c.limbs[9] &= (1 << 25) - 1

	c = c.reduce()
	c.limbs[0] += (c.limbs[9] >> 25) * 19
	c.limbs[9] &= (1 << 25) - 1

	c.limbs[0] += 19

	c = c.reduce()
	c.limbs[0] += (c.limbs[9] >> 25) * 19
	c.limbs[9] &= (1 << 25) - 1

	c.limbs[0] += (1 << 26) - 19
	c.limbs[1] += (1 << 25) - 1
	c.limbs[2] += (1 << 26) - 1
	c.limbs[3] += (1 << 25) - 1
	c.limbs[4] += (1 << 26) - 1
	c.limbs[5] += (1 << 25) - 1
	c.limbs[6] += (1 << 26) - 1
	c.limbs[7] += (1 << 25) - 1
	c.limbs[8] += (1 << 26) - 1
	c.limbs[9] += (1 << 25) - 1

	c = c.reduce()
	c.limbs[9] &= (1 << 25) - 1

	return c
}
