package curve

import (
	"testing"

	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/stretchr/testify/require"
)

func projectivePointAt(z, y, x int) ProjectiveOperand {
	return ProjectiveOperand{Position: stackmodel.ProjectivePoint{
		Z: stackmodel.MustNew(z, 1, false),
		Y: stackmodel.MustNew(y, 1, false),
		X: stackmodel.MustNew(x, 1, false),
	}}
}

func TestG1ProjectiveAdditionIsDeterministic(t *testing.T) {
	g := testG1()
	p := projectivePointAt(5, 4, 3)
	q := projectivePointAt(2, 1, 0)
	a, err := g.Addition(p, q, ScriptParameters{})
	require.NoError(t, err)
	b, err := g.Addition(p, q, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestG1ProjectiveAdditionRejectsBadOrder(t *testing.T) {
	g := testG1()
	p := projectivePointAt(2, 1, 0)
	q := projectivePointAt(5, 4, 3)
	_, err := g.Addition(p, q, ScriptParameters{})
	require.Error(t, err)
}

func TestG1MixedAdditionIsDeterministic(t *testing.T) {
	g := testG1()
	p := AffineOperand{Position: stackmodel.AffinePoint{
		Y: stackmodel.MustNew(5, 1, false),
		X: stackmodel.MustNew(4, 1, false),
	}}
	q := projectivePointAt(3, 2, 1)
	a, err := g.MixedAddition(p, q, ScriptParameters{})
	require.NoError(t, err)
	b, err := g.MixedAddition(p, q, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestG1ProjectiveDoublingIsDeterministic(t *testing.T) {
	g := testG1()
	p := projectivePointAt(2, 1, 0)
	a, err := g.Doubling(p, ScriptParameters{})
	require.NoError(t, err)
	b, err := g.Doubling(p, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestG1ProjectiveAdditionWithUnknownPointsIsDeterministic(t *testing.T) {
	g := testG1()
	p := projectivePointAt(5, 4, 3)
	q := projectivePointAt(2, 1, 0)
	a, err := g.AdditionWithUnknownPoints(p, q, ScriptParameters{})
	require.NoError(t, err)
	b, err := g.AdditionWithUnknownPoints(p, q, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 50)
}

func TestG1ProjectiveAdditionWithUnknownPointsRejectsBadOrder(t *testing.T) {
	g := testG1()
	p := projectivePointAt(2, 1, 0)
	q := projectivePointAt(5, 4, 3)
	_, err := g.AdditionWithUnknownPoints(p, q, ScriptParameters{})
	require.Error(t, err)
}

func TestG1ProjectiveFinalizeHonoursTakeModulo(t *testing.T) {
	g := testG1()
	p := projectivePointAt(5, 4, 3)
	q := projectivePointAt(2, 1, 0)
	_, err := g.Addition(p, q, ScriptParameters{TakeModulo: true})
	require.Error(t, err)
}
