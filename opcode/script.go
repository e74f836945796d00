package opcode

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/icza/bitio"
)

// Script is an ordered, concatenable sequence of opcodes and push-data. It is
// the opaque value every builder in this module emits (spec §3 "Script
// fragment"); nothing in this module ever inspects a Script's contents to
// decide what to build next — composition is purely structural concatenation.
type Script []byte

// New returns an empty script.
func New() Script { return Script{} }

// FromOps builds a script from a sequence of bare opcodes (no push-data).
func FromOps(ops ...Op) Script {
	s := make(Script, len(ops))
	for i, op := range ops {
		s[i] = byte(op)
	}
	return s
}

// Append concatenates scripts left to right and returns the result; neither
// receiver nor argument is mutated. Script composition is monoidal: Append is
// associative and New() is a two-sided identity.
func (s Script) Append(other Script) Script {
	out := make(Script, 0, len(s)+len(other))
	out = append(out, s...)
	out = append(out, other...)
	return out
}

// AppendOps is a convenience wrapper around Append(FromOps(ops...)).
func (s Script) AppendOps(ops ...Op) Script {
	return s.Append(FromOps(ops...))
}

// Equals reports whether two scripts are byte-identical.
func (s Script) Equals(other Script) bool {
	return bytes.Equal(s, other)
}

// Bytes returns the raw serialised opcode stream.
func (s Script) Bytes() []byte {
	return append([]byte(nil), s...)
}

// Len returns the number of bytes in the serialised script. Builders use
// this (rather than counting opcodes) to reason about script-size growth
// (spec §9 "Unbounded script-size growth").
func (s Script) Len() int {
	return len(s)
}

// minimalBytes returns the little-endian, sign-and-magnitude minimal encoding
// of n used for script-integer push-data (CScriptNum-style: magnitude bytes
// little-endian, sign carried in the MSB of the last byte, with a padding
// zero byte inserted when the natural high bit would otherwise be
// ambiguous). The bitwise assembly is performed with a bitio.Writer over the
// magnitude so that partial final bytes are packed without manual shifting.
func minimalBytes(n *big.Int) []byte {
	if n.Sign() == 0 {
		return nil
	}
	mag := new(big.Int).Abs(n)
	nbits := mag.BitLen()
	nbytes := (nbits + 7) / 8

	buf := &bytes.Buffer{}
	bw := bitio.NewWriter(buf)
	for b := 0; b < nbytes; b++ {
		for j := 7; j >= 0; j-- {
			bw.TryWriteBits(uint64(boolBit(mag.Bit(b*8+j))), 1)
		}
	}
	_ = bw.Close()
	out := buf.Bytes()

	if out[len(out)-1]&0x80 != 0 {
		out = append(out, 0x00)
	}
	if n.Sign() < 0 {
		out[len(out)-1] |= 0x80
	}
	return out
}

func boolBit(b uint) uint64 {
	if b != 0 {
		return 1
	}
	return 0
}

// pushDataHeader returns the length-prefix opcode(s) a data push of the
// given length requires, mirroring Bitcoin Script's direct-push / PUSHDATA1/2/4
// convention.
func pushDataHeader(n int) []byte {
	switch {
	case n == 0:
		return []byte{byte(OP_0)}
	case n <= 75:
		return []byte{byte(n)}
	case n <= 0xff:
		return []byte{byte(OP_PUSHDATA1), byte(n)}
	case n <= 0xffff:
		return []byte{byte(OP_PUSHDATA2), byte(n), byte(n >> 8)}
	default:
		return []byte{
			byte(OP_PUSHDATA4),
			byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24),
		}
	}
}

// PushData pushes raw bytes as a single stack item, choosing the minimal
// push-data opcode for the length.
func PushData(b []byte) Script {
	out := make(Script, 0, len(b)+5)
	out = append(out, pushDataHeader(len(b))...)
	out = append(out, b...)
	return out
}

// PushInt pushes a scalar using minimal script-integer encoding: OP_0 for
// zero, OP_1..OP_16/OP_1NEGATE for the small-integer opcodes, and a minimal
// sign-and-magnitude push otherwise.
func PushInt(n *big.Int) Script {
	if n.IsInt64() {
		v := n.Int64()
		switch {
		case v == 0:
			return FromOps(OP_0)
		case v == -1:
			return FromOps(OP_1NEGATE)
		case v >= 1 && v <= 16:
			return FromOps(Op(int(OP_1) + int(v) - 1))
		}
	}
	return PushData(minimalBytes(n))
}

// NumsToScript pushes a list of integer literals onto the stack, in the
// order given (the first element of the list ends up deepest on the stack).
// This realises spec §2's `nums_to_script(list)`.
func NumsToScript(nums []*big.Int) Script {
	out := New()
	for _, n := range nums {
		out = out.Append(PushInt(n))
	}
	return out
}

// optimisePatterns are the peephole cancellations carried over from the
// original implementation's `optimise_script` (see SPEC_FULL.md
// "Supplemented features"): a push onto and immediately back off the
// altstack is a no-op, and three consecutive rotations are a no-op (OP_ROT
// applied three times to a 3-item window is the identity permutation).
var optimisePatterns = [][]Op{
	{OP_TOALTSTACK, OP_FROMALTSTACK},
	{OP_FROMALTSTACK, OP_TOALTSTACK},
	{OP_ROT, OP_ROT, OP_ROT},
}

// Optimise returns a copy of the script with redundant adjacent opcode runs
// removed, repeating until no pattern matches. It is never applied
// implicitly by a builder: callers opt in explicitly so that determinism
// tests can compare against an un-optimised golden script when that is what
// they want to assert about (spec §8 "Determinism").
//
// Optimise only recognises bare-opcode patterns (no push-data payloads in
// between), so it operates on the decoded opcode stream rather than the raw
// byte stream.
func (s Script) Optimise() Script {
	ops, err := s.ops()
	if err != nil {
		// A script containing anything Optimise cannot safely tokenize
		// (e.g. it was built by a caller manipulating raw bytes directly)
		// is returned unchanged rather than corrupted.
		return s
	}
	changed := true
	for changed {
		changed = false
		for _, pattern := range optimisePatterns {
			idx := findRun(ops, pattern)
			if idx < 0 {
				continue
			}
			ops = append(ops[:idx], ops[idx+len(pattern):]...)
			changed = true
		}
	}
	return FromOps(ops...)
}

func findRun(ops []Op, pattern []Op) int {
	if len(pattern) > len(ops) {
		return -1
	}
	for i := 0; i+len(pattern) <= len(ops); i++ {
		match := true
		for j, p := range pattern {
			if ops[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// ops decodes s into bare opcodes. It only succeeds for scripts that contain
// no push-data (i.e. pure control/stack-manipulation fragments); it exists
// solely to support Optimise and is not a general-purpose disassembler.
func (s Script) ops() ([]Op, error) {
	out := make([]Op, 0, len(s))
	for _, b := range s {
		// Bytes 0x01..0x4e (other than the bare OP_0 opcode, which is 0x00)
		// are push-data length prefixes, not standalone opcodes; a script
		// containing one cannot be tokenized without knowing how many
		// payload bytes follow.
		if b >= 0x01 && b <= 0x4e {
			return nil, fmt.Errorf("opcode: script contains push-data byte 0x%02x, cannot tokenize as bare opcodes", b)
		}
		out = append(out, Op(b))
	}
	return out, nil
}
