package stackmodel

// AffinePoint is an elliptic-curve point descriptor in affine coordinates:
// a pair of field-element stack descriptors (spec §3 "Elliptic-curve point
// descriptor"). X and Y may each have their own extension degree (1 for a
// point over F_q, 2 for a point over F_{q^2}, e.g. a G2 point on the twist).
type AffinePoint struct {
	X, Y Position
}

// StackPosition returns the descriptor spanning both coordinates, treating Y
// (the shallower of the two, since it is pushed last / on top) as the
// element's top and X as its bottom. This lets an AffinePoint participate in
// CheckOrder alongside bare field elements.
func (p AffinePoint) StackPosition() Position {
	return Position{Depth: p.Y.Top(), ExtensionDegree: p.Y.Top() - p.X.Bottom() + 1}
}

// Shift returns a copy of p with both coordinates shifted by k.
func (p AffinePoint) Shift(k int) AffinePoint {
	return AffinePoint{X: p.X.Shift(k), Y: p.Y.Shift(k)}
}

// ProjectivePoint is an elliptic-curve point descriptor in projective
// coordinates: a triple of field-element stack descriptors.
type ProjectivePoint struct {
	X, Y, Z Position
}

// StackPosition returns the descriptor spanning all three coordinates.
func (p ProjectivePoint) StackPosition() Position {
	return Position{Depth: p.Z.Top(), ExtensionDegree: p.Z.Top() - p.X.Bottom() + 1}
}

// Shift returns a copy of p with every coordinate shifted by k.
func (p ProjectivePoint) Shift(k int) ProjectivePoint {
	return ProjectivePoint{X: p.X.Shift(k), Y: p.Y.Shift(k), Z: p.Z.Shift(k)}
}
