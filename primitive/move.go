// Package primitive implements the script-manipulation primitives of spec
// §4.2: pick/roll, the move dispatcher, modular reduction, and the
// bottom-of-stack constant guard. Every higher layer (field, towers, curve,
// pairing, groth16) is built out of these.
package primitive

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// Mode selects whether Move copies (Pick) or consumes (Roll) its operand.
type Mode int

const (
	ModePick Mode = iota
	ModeRoll
)

// Pick emits opcodes that copy the n consecutive scalars at depths
// [depth, depth-1, ..., depth-n+1] to the top of the stack, preserving their
// relative order (spec §4.2 `pick(d, n)`). It special-cases the small,
// fixed-shape windows the stack machine has dedicated opcodes for.
func Pick(depth, n int) opcode.Script {
	switch {
	case n == 1 && depth == 0:
		return opcode.FromOps(opcode.OP_DUP)
	case n == 1 && depth == 1:
		return opcode.FromOps(opcode.OP_OVER)
	case n == 2 && depth == 1:
		return opcode.FromOps(opcode.OP_2DUP)
	case n == 2 && depth == 3:
		return opcode.FromOps(opcode.OP_2OVER)
	case n == 3 && depth == 2:
		return opcode.FromOps(opcode.OP_3DUP)
	}
	out := opcode.New()
	for i := 0; i < n; i++ {
		out = out.Append(opcode.PushInt(big.NewInt(int64(depth)))).AppendOps(opcode.OP_PICK)
	}
	return out
}

// Roll emits opcodes that move (not copy) the n consecutive scalars at
// depths [depth, depth-1, ..., depth-n+1] to the top of the stack,
// preserving their relative order (spec §4.2 `roll(d, n)`). Each roll takes
// the deepest remaining target and re-inserts it on top, which pushes the
// shallower targets one depth deeper, so the next target again sits at
// `depth` and the same constant is re-used for every one of the n rolls.
func Roll(depth, n int) opcode.Script {
	switch {
	case n == 1 && depth == 0:
		return opcode.New() // already on top
	case n == 1 && depth == 1:
		return opcode.FromOps(opcode.OP_SWAP)
	case n == 2 && depth == 3:
		return opcode.FromOps(opcode.OP_2SWAP)
	}
	rollDepth := depth
	out := opcode.New()
	for i := 0; i < n; i++ {
		out = out.Append(opcode.PushInt(big.NewInt(int64(rollDepth)))).AppendOps(opcode.OP_ROLL)
	}
	return out
}

// Move dispatches on mode and on the descriptor's own position/extension
// degree (spec §4.2 `move(descriptor, mode)`).
func Move(pos stackmodel.Position, mode Mode) opcode.Script {
	switch mode {
	case ModeRoll:
		return Roll(pos.Top(), pos.ExtensionDegree)
	default:
		return Pick(pos.Top(), pos.ExtensionDegree)
	}
}

// ModeFromBool maps a boolean "should this operand be rolled" flag to a
// Mode, matching the rolling_options bitmask decoding used throughout the
// field and curve layers (spec §4.3 `rolling_options`).
func ModeFromBool(rolled bool) Mode {
	if rolled {
		return ModeRoll
	}
	return ModePick
}

// RollBottom emits opcodes that roll the single scalar currently at the very
// bottom of the stack to the top, regardless of current stack depth. This is
// how the stack-resident field characteristic q is brought up for a modular
// reduction (spec §4.3 "Modular reduction is deferred").
func RollBottom() opcode.Script {
	return opcode.FromOps(opcode.OP_DEPTH, opcode.OP_1SUB, opcode.OP_ROLL)
}

// PickBottom is RollBottom's non-destructive counterpart: it copies the
// bottom-of-stack item to the top without removing it from the bottom.
func PickBottom() opcode.Script {
	return opcode.FromOps(opcode.OP_DEPTH, opcode.OP_1SUB, opcode.OP_PICK)
}
