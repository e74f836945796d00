package pairing

// SizeEstimator decides, after each symbolic operation, whether the next
// value's estimated bit size has grown past the point where a modular
// reduction should be inserted before continuing (spec §4.3 "Modular
// reduction is deferred"). BLS12-381 and MNT4-753 use genuinely different
// growth models — one tracks a simple additive bit-growth bound, the other
// a per-step growth that is quadratic in the current size — so
// this package keeps the two as separate implementations rather than
// folding them into one parameterised formula, the same choice the pack's
// own size-estimation modules make for the two curve families.
type SizeEstimator interface {
	// ShouldReduce reports whether an operand of the given estimated bit
	// size should be reduced before combining it with another operation.
	ShouldReduce(currentSize int) bool
	// NextSize estimates the bit size after one multiplication/squaring
	// step over an operand of the given current size.
	NextSize(currentSize int) int
}

// BLS12Estimator is the size estimator for BLS12-381's tower (spec §9):
// every pairing-level multiplication is modelled as adding a fixed bound to
// the current size, and a reduction is due once that bound would be
// exceeded.
type BLS12Estimator struct {
	// Bound is the additive bit-growth allowance per step before a
	// reduction becomes mandatory.
	Bound int
}

// NewBLS12Estimator constructs the standard BLS12-381 estimator (bound 32,
// spec §9's own BLS12-381 constant).
func NewBLS12Estimator() BLS12Estimator { return BLS12Estimator{Bound: 32} }

func (e BLS12Estimator) ShouldReduce(currentSize int) bool { return currentSize >= e.Bound }
func (e BLS12Estimator) NextSize(currentSize int) int      { return currentSize + e.Bound }

// MNT4Estimator is the size estimator for MNT4-753's tower (spec §9):
// MNT4-753's larger base field and quartic (rather than sextic) twist make
// its per-step growth scale with the current size instead of staying
// fixed: NextSize adds currentSize^2/Bound. ShouldReduce compares the
// square of currentSize against the square of Bound, which for non-negative
// sizes is the same as currentSize >= Bound.
type MNT4Estimator struct {
	// Bound is MNT4-753's own threshold constant (spec §9: 52).
	Bound int
}

// NewMNT4Estimator constructs the standard MNT4-753 estimator (bound 52).
func NewMNT4Estimator() MNT4Estimator { return MNT4Estimator{Bound: 52} }

func (e MNT4Estimator) ShouldReduce(currentSize int) bool {
	return currentSize*currentSize >= e.Bound*e.Bound
}

func (e MNT4Estimator) NextSize(currentSize int) int {
	return currentSize + currentSize*currentSize/e.Bound
}
