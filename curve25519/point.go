package curve25519

// Point is a projective (X:Z) representation of a Curve25519 point: the
// affine value is X * Z^-1 mod p. The identity element is (1, 0).
type Point struct {
	x, z FieldElement
}

var pointIdentity = Point{x: fieldOne, z: fieldZero}

// doubleAdd computes (2*Q, Q+R) given Q, R, and x1, the x-coordinate of
// R-Q, which in the ladder is always the original base point. Every
// operation here is a FieldElement operation or a field multiplication by
// a public small constant (121665), so doubleAdd itself carries no
// secret-dependent branches.
func doubleAdd(q, r Point, x1 FieldElement) (Point, Point) {
	qAdd := q.x.add(q.z)
	qAdd2 := qAdd.mul(qAdd)
	qSub := q.x.sub(q.z)
	qSub2 := qSub.mul(qSub)

	x2 := qAdd2.mul(qSub2)

	e := qAdd2.sub(qSub2)
	// (486662 - 2) / 4 == 121665
	z2 := e.mul(qAdd2.add(e.mulScalar(121665)))

	rAdd := r.x.add(r.z)
	rSub := r.x.sub(r.z)

	da := qSub.mul(rAdd)
	cb := qAdd.mul(rSub)

	tAdd := da.add(cb)
	tSub := da.sub(cb)

	x3 := tAdd.mul(tAdd)
	z3 := tSub.mul(tSub).mul(x1)

	return Point{x: x2, z: z2}, Point{x: x3, z: z3}
}

// pointSwap constant-time conditionally swaps a and b.
func pointSwap(flag uint64, a, b Point) (Point, Point) {
	ax, bx := swap(flag, a.x, b.x)
	az, bz := swap(flag, a.z, b.z)
	return Point{x: ax, z: az}, Point{x: bx, z: bz}
}

// affine returns the affine x-coordinate X * Z^-1.
func (p Point) affine() FieldElement {
	return p.x.mul(p.z.inverse())
}
