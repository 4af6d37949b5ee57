package curve25519

// BasePoint is the standard Curve25519 base point u = 9, little-endian
// encoded, used to derive an X25519 public key from a clamped private
// scalar: ScalarMult(priv, BasePoint).
var BasePoint = [32]byte{9}

// PrivateKey is a clamped 32-byte X25519 scalar.
type PrivateKey [32]byte

// ClampPrivateKey applies the standard Curve25519 clamp to raw: clear the
// low 3 bits of byte 0, clear the top bit and set bit 6 of byte 31. This
// forces the scalar into the safe subgroup expected by the ladder and
// prevents small-subgroup attacks.
func ClampPrivateKey(raw [32]byte) PrivateKey {
	k := raw
	k[0] &= 0b1111_1000
	k[31] &= 0b0111_1111
	k[31] |= 0b0100_0000
	return PrivateKey(k)
}

// ScalarMult computes priv * point via the constant-time Montgomery
// ladder: control flow and memory access inside the loop do not depend on
// priv's bits. It is total over all 32-byte inputs -- there are no error
// conditions.
func ScalarMult(priv PrivateKey, point [32]byte) [32]byte {
	q := fieldElementFromBytes(point)

	kq := pointIdentity
	k1q := Point{x: q, z: fieldOne}

	for i := 254; i >= 0; i-- {
		bit := uint64(priv[i/8]>>(uint(i)%8)) & 1

		c, c1 := pointSwap(bit, kq, k1q)
		d, d1 := doubleAdd(c, c1, q)
		kq, k1q = pointSwap(bit, d, d1)
	}

	return kq.affine().Bytes()
}
