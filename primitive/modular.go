package primitive

import (
	"fmt"
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
)

// VerifyBottomConstant emits opcodes that fail the script unless the word at
// the very bottom of the stack equals q (spec §4.2 `verify_bottom_constant(q)`).
// It is non-destructive: q is left in place at the bottom.
func VerifyBottomConstant(q *big.Int) opcode.Script {
	return PickBottom().
		Append(opcode.PushInt(q)).
		AppendOps(opcode.OP_EQUALVERIFY)
}

// ModOptions configures a single modular-reduction emission (spec §4.2
// `mod(stack_preparation, is_positive, is_constant_reused)`).
type ModOptions struct {
	// PositiveModulo normalises the result into [0, q) when true; when
	// false, the result keeps whatever sign the preceding arithmetic left
	// it with (spec §4.2).
	PositiveModulo bool
	// IsConstantReused leaves q one below the result on exit, for the next
	// chained operation to consume directly, instead of dropping it.
	IsConstantReused bool
	// CleanConstant removes q entirely on exit: this is the last field
	// operation in a chain that needed it.
	CleanConstant bool
}

// ErrUndefinedConstantPlacement is returned by Mod when neither
// CleanConstant nor IsConstantReused is set, leaving the placement of the
// field characteristic q on exit undefined (spec §7 "Invalid flag
// combination": "take_modulo = true but neither clean_constant nor
// is_constant_reused set").
var ErrUndefinedConstantPlacement = fmt.Errorf(
	"primitive: take_modulo requires exactly one of CleanConstant or IsConstantReused to be set",
)

// Mod reduces the value sitting second-from-top modulo q, which must sit
// directly on top of it on entry (i.e. the caller has already brought q up
// to the top via PrepareConstant, per spec §4.3's deferred-reduction
// discipline). It implements spec §4.2's `mod`:
//
//   - OP_TUCK duplicates q underneath the value, then OP_MOD consumes the
//     original q and the value and pushes `value mod q`, leaving the
//     duplicate of q directly beneath the result — this is how q is carried
//     forward for the next operation without re-fetching it from the stack
//     bottom.
//   - When PositiveModulo is set, a second OP_OVER OP_ADD OP_OVER OP_MOD
//     pass folds a negative remainder back into [0, q): adding q to a value
//     already in (-q, q) and reducing again always lands in [0, q).
//   - CleanConstant drops the trailing q; IsConstantReused leaves it in
//     place for the next operation. Exactly one of the two must be set.
func Mod(opts ModOptions) (opcode.Script, error) {
	if !opts.CleanConstant && !opts.IsConstantReused {
		return nil, ErrUndefinedConstantPlacement
	}
	if opts.CleanConstant && opts.IsConstantReused {
		return nil, fmt.Errorf("primitive: CleanConstant and IsConstantReused are mutually exclusive")
	}

	out := opcode.FromOps(opcode.OP_TUCK, opcode.OP_MOD)
	if opts.PositiveModulo {
		out = out.AppendOps(opcode.OP_OVER, opcode.OP_ADD, opcode.OP_OVER, opcode.OP_MOD)
	}
	if opts.CleanConstant {
		out = out.AppendOps(opcode.OP_NIP)
	}
	return out, nil
}
