package primitive

import (
	"testing"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/stretchr/testify/require"
)

func TestFrameRollUpdatesOtherDepths(t *testing.T) {
	fr := NewFrame(Slot{"x1", 1}, Slot{"x0", 1}, Slot{"y1", 1}, Slot{"y0", 1})
	require.Equal(t, 0, fr.Depth("x1"))
	require.Equal(t, 2, fr.Depth("y1"))
	require.Equal(t, 3, fr.Depth("y0"))

	got := fr.Roll("y1", "y1")
	require.True(t, got.Equals(Roll(2, 1)))

	// y1 now on top (depth0); x1,x0 (shallower than y1's old depth2) shift
	// +1; y0 (deeper) is unaffected.
	require.Equal(t, 0, fr.Depth("y1"))
	require.Equal(t, 1, fr.Depth("x1"))
	require.Equal(t, 2, fr.Depth("x0"))
	require.Equal(t, 3, fr.Depth("y0"))
}

func TestFramePickLeavesOriginalInPlaceAndShiftsOthers(t *testing.T) {
	fr := NewFrame(Slot{"x", 1}, Slot{"y", 1})
	got := fr.Pick("y", "y_copy")
	require.True(t, got.Equals(Pick(0, 1)))

	require.Equal(t, 0, fr.Depth("y_copy"))
	require.Equal(t, 1, fr.Depth("y"))
	require.Equal(t, 2, fr.Depth("x"))
}

func TestFramePushComputedAndDropTop(t *testing.T) {
	fr := NewFrame(Slot{"x", 1})
	fr.PushComputed("sum", 1)
	require.Equal(t, 0, fr.Depth("sum"))
	require.Equal(t, 1, fr.Depth("x"))

	got := fr.DropTop("sum")
	require.True(t, got.Equals(opcode.FromOps(opcode.OP_DROP)))
	require.Equal(t, 0, fr.Depth("x"))
}

func TestDropTopPanicsOnNameMismatch(t *testing.T) {
	fr := NewFrame(Slot{"x", 1})
	require.Panics(t, func() { fr.DropTop("wrong") })
}

func TestConsumeTopThenPushComputed(t *testing.T) {
	fr := NewFrame(Slot{"a", 1}, Slot{"b", 1}, Slot{"c", 1})
	fr.ConsumeTop("a", "b")
	fr.PushComputed("sum", 1)
	require.Equal(t, []string{"sum", "c"}, fr.Names())
	require.Equal(t, 0, fr.Depth("sum"))
	require.Equal(t, 1, fr.Depth("c"))
}

func TestConsumeTopPanicsOnMismatch(t *testing.T) {
	fr := NewFrame(Slot{"a", 1}, Slot{"b", 1})
	require.Panics(t, func() { fr.ConsumeTop("b", "a") })
}

func TestDepthMatchesMultiScalarSlots(t *testing.T) {
	fr := NewFrame(Slot{"a", 2}, Slot{"b", 1})
	require.Equal(t, 1, fr.Depth("a"))
	require.Equal(t, 2, fr.Depth("b"))
}
