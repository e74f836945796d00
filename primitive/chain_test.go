package primitive

import (
	"testing"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/stretchr/testify/require"
)

func TestMoveChainBothRolledMatchesPlainRolls(t *testing.T) {
	x := stackmodel.MustNew(1, 1, false)
	y := stackmodel.MustNew(0, 1, false)

	got := MoveChain([]Operand{{Position: x, Rolled: true}, {Position: y, Rolled: true}})
	want := Move(y, ModeRoll).Append(Move(x, ModeRoll))
	require.True(t, got.Equals(want))
}

func TestMoveChainPickedDeeperOperandShiftsByExtensionDegree(t *testing.T) {
	x := stackmodel.MustNew(1, 1, false)
	y := stackmodel.MustNew(0, 1, false)

	got := MoveChain([]Operand{{Position: x, Rolled: false}, {Position: y, Rolled: false}})
	want := Move(y, ModePick).Append(Move(x.Shift(1), ModePick))
	require.True(t, got.Equals(want))
}

func TestMoveChainRolledShallowOperandLeavesDeeperUnshifted(t *testing.T) {
	x := stackmodel.MustNew(1, 1, false)
	y := stackmodel.MustNew(0, 1, false)

	got := MoveChain([]Operand{{Position: x, Rolled: true}, {Position: y, Rolled: false}})
	want := Move(y, ModePick).Append(Move(x, ModeRoll))
	require.True(t, got.Equals(want))
}

func TestPrepareConstantFromBottomRolls(t *testing.T) {
	require.True(t, PrepareConstant(ConstantAtBottom).Equals(RollBottom()))
}

func TestPrepareConstantFromSecondSwaps(t *testing.T) {
	require.True(t, PrepareConstant(ConstantSecondFromTop).Equals(opcode.FromOps(opcode.OP_SWAP)))
}
