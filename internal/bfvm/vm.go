/*
Copyright (C) 2024  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package bfvm is the register-poor bytecode interpreter: it walks a
// rewritten IR program with an instruction pointer, a data pointer, and
// a growable byte tape, honoring an optional step budget and an
// optional trace sink.
package bfvm

import (
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfio"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfir"
)

// DefaultCapacity is the tape size used when the caller does not
// override it (spec's default of 30,000 cells).
const DefaultCapacity = 30_000

// VM owns one tape, one pointer, and one instruction pointer. Each
// instance is exclusive to a single run; nothing is shared across VMs.
type VM struct {
	tape    *tape
	pointer int
	ip      int
	steps   uint64
}

// New creates a VM with the given tape capacity (must be > 0).
func New(capacity int) (*VM, error) {
	t, err := newTape(capacity)
	if err != nil {
		return nil, err
	}
	return &VM{tape: t}, nil
}

// Pointer returns the current data pointer, mainly for tests.
func (vm *VM) Pointer() int { return vm.pointer }

// Tape returns a read-only snapshot of the tape contents, mainly for
// tests and --dump-ir style inspection.
func (vm *VM) Tape() []byte {
	out := make([]byte, len(vm.tape.cells))
	copy(out, vm.tape.cells)
	return out
}

// Run executes ir to completion (ip running past the end), or until a
// runtime error or the step budget is exhausted. maxSteps of 0 means
// unbounded. trace, if non-nil, receives one formatted line per
// executed instruction. On normal completion, out is flushed.
func (vm *VM) Run(ir []bfir.Node, in *bfio.Input, out *bfio.Output, trace *bfio.Tracer, maxSteps uint64) error {
	for vm.ip < len(ir) {
		if maxSteps != 0 && vm.steps >= maxSteps {
			return &bferr.Budget{}
		}

		node := ir[vm.ip]

		if trace != nil {
			cell := byte(0)
			if vm.pointer < vm.tape.len() {
				cell = vm.tape.get(vm.pointer)
			}
			if err := trace.Line(vm.steps, vm.ip, vm.pointer, cell, traceArgs(node)); err != nil {
				return err
			}
		}

		nextSteps := vm.steps + 1
		if nextSteps < vm.steps {
			return bferr.NewRuntime("step counter overflow")
		}
		vm.steps = nextSteps

		advance := true

		switch node.Op {
		case bfir.Add:
			vm.tape.set(vm.pointer, vm.tape.get(vm.pointer)+byte(node.Delta))

		case bfir.Move:
			if err := vm.move(node.Delta); err != nil {
				return err
			}

		case bfir.Output:
			if err := out.WriteByte(vm.tape.get(vm.pointer)); err != nil {
				return err
			}

		case bfir.Input:
			b, err := in.ReadByte()
			if err != nil {
				return err
			}
			vm.tape.set(vm.pointer, b)

		case bfir.Jz:
			if vm.tape.get(vm.pointer) == 0 {
				nextIP := node.Target + 1
				if nextIP <= node.Target {
					return bferr.NewRuntime("instruction pointer overflow")
				}
				vm.ip = nextIP
				advance = false
			}

		case bfir.Jnz:
			if vm.tape.get(vm.pointer) != 0 {
				vm.ip = node.Target
				advance = false
			}

		case bfir.SetZero:
			vm.tape.set(vm.pointer, 0)

		case bfir.Scan:
			if node.Delta == 0 {
				return bferr.NewRuntime("scan direction zero")
			}
			for vm.tape.get(vm.pointer) != 0 {
				if err := vm.move(node.Delta); err != nil {
					return err
				}
			}

		case bfir.AddTo:
			if err := vm.addTo(node.Offset, node.Sign); err != nil {
				return err
			}

		case bfir.AddMul:
			if err := vm.addMul(node.Edits); err != nil {
				return err
			}
		}

		if advance {
			nextIP := vm.ip + 1
			if nextIP <= vm.ip {
				return bferr.NewRuntime("instruction pointer overflow")
			}
			vm.ip = nextIP
		}
	}

	return out.Flush()
}

// move shifts the pointer by delta, growing the tape for positive
// moves and failing on negative moves past 0.
func (vm *VM) move(delta int32) error {
	next := vm.pointer + int(delta)
	if next < 0 {
		return bferr.NewRuntime("pointer underflow")
	}
	if err := vm.tape.ensure(next); err != nil {
		return err
	}
	vm.pointer = next
	return nil
}

// targetIndex resolves pointer+offset, growing the tape or failing
// exactly as move does, without moving the pointer itself.
func (vm *VM) targetIndex(offset int32) (int, error) {
	target := vm.pointer + int(offset)
	if target < 0 {
		return 0, bferr.NewRuntime("pointer underflow")
	}
	if err := vm.tape.ensure(target); err != nil {
		return 0, err
	}
	return target, nil
}

func (vm *VM) addTo(offset, sign int32) error {
	cell := vm.tape.get(vm.pointer)
	if cell == 0 {
		return nil
	}
	target, err := vm.targetIndex(offset)
	if err != nil {
		return err
	}
	delta := cell
	if sign < 0 {
		delta = -cell
	}
	vm.tape.set(target, vm.tape.get(target)+delta)
	vm.tape.set(vm.pointer, 0)
	return nil
}

func (vm *VM) addMul(edits []bfir.Edit) error {
	cell := vm.tape.get(vm.pointer)
	if cell == 0 {
		return nil
	}
	for _, e := range edits {
		target, err := vm.targetIndex(e.Offset)
		if err != nil {
			return err
		}
		delta := wrappingMul(cell, e.Factor)
		vm.tape.set(target, vm.tape.get(target)+delta)
	}
	vm.tape.set(vm.pointer, 0)
	return nil
}

// wrappingMul computes factor*cell truncated to 8 bits, computed in a
// width wide enough to hold |factor|*255 without interim loss.
func wrappingMul(cell byte, factor int32) byte {
	product := int64(factor) * int64(cell)
	return byte(uint8(product))
}

