package primitive

import "github.com/bsv-blockchain/go-zkscript/opcode"

// Frame simulates the local stack layout a multi-step formula builds up
// after its operands have been brought to the top (typically via
// MoveChain): a sequence of named slots, top to bottom, each of a given
// extension degree. Roll/Pick/DropTop emit the Roll/Pick/Drop
// script for whichever slot the caller names and update every other slot's
// simulated depth to match what the real stack machine would do, the same
// depth-shift rules MoveChain's doc describes. This lets the towers, curve
// and pairing builders write out multi-step formulas (Fq2 multiplication,
// elliptic-curve point doubling, line evaluation, ...) by naming
// intermediate values instead of hand-deriving a depth constant for every
// single Pick/Roll in the formula.
type Frame struct {
	slots []frameSlot
}

type frameSlot struct {
	name   string
	degree int
}

// NewFrame builds a Frame whose initial layout is slots, top to bottom
// (slots[0] is the current top of the stack).
func NewFrame(slots ...Slot) *Frame {
	f := &Frame{}
	for _, s := range slots {
		f.slots = append(f.slots, frameSlot{name: s.Name, degree: s.Degree})
	}
	return f
}

// Slot names one of a Frame's starting positions.
type Slot struct {
	Name   string
	Degree int
}

func (f *Frame) indexOf(name string) int {
	for i, s := range f.slots {
		if s.name == name {
			return i
		}
	}
	panic("primitive: frame has no slot named " + name)
}

func (f *Frame) depthOf(i int) int {
	d := f.slots[i].degree - 1
	for j := 0; j < i; j++ {
		d += f.slots[j].degree
	}
	return d
}

// Depth returns the current simulated depth of the named slot's top scalar.
func (f *Frame) Depth(name string) int {
	return f.depthOf(f.indexOf(name))
}

// Roll emits opcodes rolling the named slot to the top of the stack,
// renaming it to newName (pass the same name to leave it unchanged) and
// shifting every other slot's simulated depth exactly as Roll does on the
// real stack.
func (f *Frame) Roll(name, newName string) opcode.Script {
	i := f.indexOf(name)
	depth := f.depthOf(i)
	degree := f.slots[i].degree
	out := Roll(depth, degree)
	f.slots = append(f.slots[:i], f.slots[i+1:]...)
	f.slots = append([]frameSlot{{newName, degree}}, f.slots...)
	return out
}

// Pick emits opcodes copying the named slot to the top of the stack under
// newName, leaving the original slot in the frame; every existing slot's
// depth grows by the copied slot's degree.
func (f *Frame) Pick(name, newName string) opcode.Script {
	i := f.indexOf(name)
	depth := f.depthOf(i)
	degree := f.slots[i].degree
	out := Pick(depth, degree)
	f.slots = append([]frameSlot{{newName, degree}}, f.slots...)
	return out
}

// PushComputed records that the preceding opcodes (emitted by the caller,
// outside the Frame) left a fresh value of the given degree on top of the
// stack, under name — e.g. right after an OP_ADD/OP_MUL the Frame does not
// itself know about.
func (f *Frame) PushComputed(name string, degree int) {
	f.slots = append([]frameSlot{{name, degree}}, f.slots...)
}

// ConsumeTop removes the current top len(names) slots from the Frame
// without emitting any opcodes, verifying they are named names (top to
// bottom) first. Use it after emitting an opcode (OP_ADD, OP_MUL, ...) that
// consumes those slots itself, right before PushComputed records what the
// opcode left behind.
func (f *Frame) ConsumeTop(names ...string) {
	for i, name := range names {
		if f.slots[i].name != name {
			panic("primitive: ConsumeTop name mismatch at position " + name)
		}
	}
	f.slots = f.slots[len(names):]
}

// DropTop emits opcodes dropping the current top slot, which must be
// named name, from both the stack and the Frame.
func (f *Frame) DropTop(name string) opcode.Script {
	if len(f.slots) == 0 || f.slots[0].name != name {
		panic("primitive: DropTop name mismatch")
	}
	degree := f.slots[0].degree
	f.slots = f.slots[1:]
	ops := make([]opcode.Op, degree)
	for i := range ops {
		ops[i] = opcode.OP_DROP
	}
	return opcode.FromOps(ops...)
}

// Names returns the current slot names, top to bottom, for tests and
// debugging.
func (f *Frame) Names() []string {
	out := make([]string, len(f.slots))
	for i, s := range f.slots {
		out[i] = s.name
	}
	return out
}
