package primitive

import "github.com/bsv-blockchain/go-zkscript/opcode"

// ConstantLocation records where the field characteristic q currently sits
// relative to a value that is about to be reduced modulo it, so the caller
// can bring q directly on top (Mod's entry requirement) without guessing.
type ConstantLocation int

const (
	// ConstantAtBottom means q has not been touched yet this chain: it sits
	// at the absolute bottom of the stack, placed there by the unlocking
	// script and guarded by VerifyBottomConstant.
	ConstantAtBottom ConstantLocation = iota
	// ConstantSecondFromTop means a previous operation in the same chain
	// left q one below the top (ModOptions.IsConstantReused), directly
	// beneath the value just computed on top of it.
	ConstantSecondFromTop
)

// PrepareConstant emits the opcodes that bring q from loc to the very top of
// the stack, directly above the value Mod is about to reduce.
func PrepareConstant(loc ConstantLocation) opcode.Script {
	switch loc {
	case ConstantSecondFromTop:
		return opcode.FromOps(opcode.OP_SWAP)
	default:
		return RollBottom()
	}
}
