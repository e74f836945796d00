package groth16

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/curve"
	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/pairing"
	"github.com/bsv-blockchain/go-zkscript/towers"
)

// RefTxLockingKey is the RefTx-pattern Groth16 locking key (spec §4.8,
// original_source's script_types/locking_keys/reftx.py): like LockingKey,
// but the public input's contribution to the MSM (Sigma) is fixed once at
// locking time instead of being recomputed from the witness's scalars on
// every spend, which is the right shape when the public input a script is
// meant to check is already known when the output is created rather than
// supplied later by whoever spends it.
type RefTxLockingKey struct {
	VK    VerificationKey
	Model pairing.Model
	// Sigma is the precomputed gamma_abc MSM result, fixed at locking time.
	Sigma [3]*big.Int
}

// GrothVerifier emits the same check LockingKey.GrothVerifierWithPrecomputedMsm
// does, but with Sigma baked in as a literal rather than read off the
// stack, following reftx.py's own "the MSM result never varies across
// spends of this particular output" assumption.
func (lk RefTxLockingKey) GrothVerifier(g1 curve.G1, b curve.AffineOperand, fInv towers.Fq12Operand, params pairing.ScriptParameters) (opcode.Script, error) {
	plain := LockingKey{VK: lk.VK, Model: lk.Model}
	prefix := opcode.NumsToScript([]*big.Int{lk.Sigma[0], lk.Sigma[1], lk.Sigma[2]})
	return plain.finishVerification(prefix, b, fInv, params)
}
