package primitive

import (
	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// Operand is one argument of a multi-operand arithmetic builder: its stack
// position together with whether it should be rolled (consumed) or picked
// (copied), per spec §4.3's `rolling_options` bitmask.
type Operand struct {
	Position stackmodel.Position
	Rolled   bool
}

// MoveChain brings every operand to the top of the stack, shallowest first,
// in the order needed by spec §4.3's uniform contract. ops must be supplied
// deepest-first, the same decreasing-depth order stackmodel.CheckOrder
// expects; MoveChain processes them in reverse (shallowest first, since the
// shallowest operand is nearest the top already and disturbs the others
// least) and accumulates the depth correction every not-yet-moved, deeper
// operand needs:
//
//   - picking an operand leaves the original stack untouched and stacks a
//     new copy on top, so every other remaining operand's depth grows by the
//     moved operand's extension degree;
//   - rolling an operand removes it and re-inserts it on top; a
//     still-deeper operand is left at the same depth (the vacated slot and
//     the new top cancel out), while a shallower one would have shifted —
//     but shallower operands were already moved by the time a deeper one is
//     processed, so that case never arises here.
//
// The moved operands end up on the stack in the reverse of their input
// order: the deepest operand (last one moved) ends up on top.
func MoveChain(ops []Operand) opcode.Script {
	out := opcode.New()
	shift := 0
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		out = out.Append(Move(op.Position.Shift(shift), ModeFromBool(op.Rolled)))
		if !op.Rolled {
			shift += op.Position.ExtensionDegree
		}
	}
	return out
}
