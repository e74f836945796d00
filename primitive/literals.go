package primitive

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
)

// NumsToScript pushes a list of integer literals onto the stack in order
// (spec §4.2 `nums_to_script(list)`). It is a thin re-export of
// opcode.NumsToScript, kept here so callers working at the primitive layer
// do not need to reach into the opcode package directly.
func NumsToScript(nums []*big.Int) opcode.Script {
	return opcode.NumsToScript(nums)
}
