package stackmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsTooShallowPosition(t *testing.T) {
	_, err := New(0, 2, false)
	require.Error(t, err)
}

func TestNewAcceptsBoundaryPosition(t *testing.T) {
	p, err := New(1, 2, false)
	require.NoError(t, err)
	require.Equal(t, 0, p.Bottom())
	require.Equal(t, 1, p.Top())
}

func TestShiftAddsToDepth(t *testing.T) {
	p := MustNew(3, 2, false)
	shifted := p.Shift(2)
	require.Equal(t, 5, shifted.Depth)
	require.Equal(t, p.ExtensionDegree, shifted.ExtensionDegree)
	require.Equal(t, p.Negate, shifted.Negate)
}

func TestOverlapsDetectsIntersectingRanges(t *testing.T) {
	a := MustNew(3, 2, false) // depths 2,3
	b := MustNew(2, 1, false) // depth 2
	require.True(t, Overlaps(a, b))

	c := MustNew(1, 2, false) // depths 0,1
	require.False(t, Overlaps(a, c))
}

func TestIsBeforeRequiresStrictSeparation(t *testing.T) {
	deep := MustNew(5, 2, false)  // depths 4,5
	shallow := MustNew(2, 1, false) // depth 2
	require.True(t, IsBefore(deep, shallow))
	require.False(t, IsBefore(shallow, deep))

	adjacent := MustNew(4, 1, false) // depth 4, touches deep's bottom
	require.False(t, IsBefore(deep, adjacent))
}

func TestCheckOrderAcceptsDecreasingNonOverlapping(t *testing.T) {
	elems := []Position{MustNew(5, 2, false), MustNew(2, 1, false), MustNew(1, 1, false)}
	require.NoError(t, CheckOrder(elems))
}

func TestCheckOrderRejectsOverlap(t *testing.T) {
	elems := []Position{MustNew(3, 2, false), MustNew(2, 1, false)}
	require.Error(t, CheckOrder(elems))
}

func TestCheckOrderRejectsMisorderedOperands(t *testing.T) {
	elems := []Position{MustNew(1, 1, false), MustNew(5, 2, false)}
	require.Error(t, CheckOrder(elems))
}

func TestAffinePointShift(t *testing.T) {
	p := AffinePoint{X: MustNew(1, 1, false), Y: MustNew(0, 1, false)}
	shifted := p.Shift(3)
	require.Equal(t, 4, shifted.X.Depth)
	require.Equal(t, 3, shifted.Y.Depth)
}

func TestProjectivePointStackPosition(t *testing.T) {
	p := ProjectivePoint{
		X: MustNew(2, 1, false),
		Y: MustNew(1, 1, false),
		Z: MustNew(0, 1, false),
	}
	pos := p.StackPosition()
	require.Equal(t, 0, pos.Depth)
	require.Equal(t, 3, pos.ExtensionDegree)
}
