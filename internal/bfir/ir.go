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
package bfir

import (
	"fmt"
	"io"
)

// Op identifies the shape of a Node. Exactly the ten variants the
// optimizer and VM know about; no other IR shape is ever constructed.
type Op int

const (
	Add Op = iota
	Move
	Output
	Input
	Jz
	Jnz
	SetZero
	Scan
	AddTo
	AddMul
)

func (op Op) String() string {
	switch op {
	case Add:
		return "Add"
	case Move:
		return "Move"
	case Output:
		return "Output"
	case Input:
		return "Input"
	case Jz:
		return "Jz"
	case Jnz:
		return "Jnz"
	case SetZero:
		return "SetZero"
	case Scan:
		return "Scan"
	case AddTo:
		return "AddTo"
	case AddMul:
		return "AddMul"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Edit is one (offset, factor) pair of an AddMul node.
type Edit struct {
	Offset int32
	Factor int32
}

// Node is one IR instruction. Not every field is meaningful for every
// Op; see the per-Op comments below for which fields are read.
type Node struct {
	Op Op

	Delta  int32 // Add, Move, Scan (direction, ±1)
	Target int   // Jz, Jnz: partner index

	Offset int32 // AddTo: relative offset
	Sign   int32 // AddTo: +1 or -1

	Edits []Edit // AddMul
}

// UnmatchedTarget is the sentinel used by bracket matchers to mark a
// jump with no known partner yet (mirrors Rust's usize::MAX sentinel,
// but Go ints are signed so -1 is the natural choice).
const UnmatchedTarget = -1

// Build translates a filtered opcode stream and its matched jump
// targets into IR, one node per opcode. ops and jumps must be the same
// length and index-aligned: jumps[i] is only consulted when ops[i] is
// '[' or ']'.
func Build(ops []byte, jumps []int) ([]Node, error) {
	if len(ops) != len(jumps) {
		return nil, fmt.Errorf("ops and jumps length mismatch")
	}

	ir := make([]Node, 0, len(ops))
	for idx, op := range ops {
		switch op {
		case '+':
			ir = append(ir, Node{Op: Add, Delta: 1})
		case '-':
			ir = append(ir, Node{Op: Add, Delta: -1})
		case '>':
			ir = append(ir, Node{Op: Move, Delta: 1})
		case '<':
			ir = append(ir, Node{Op: Move, Delta: -1})
		case '.':
			ir = append(ir, Node{Op: Output})
		case ',':
			ir = append(ir, Node{Op: Input})
		case '[':
			target := jumps[idx]
			if target == UnmatchedTarget {
				return nil, fmt.Errorf("missing jump target for '[' at %d", idx)
			}
			ir = append(ir, Node{Op: Jz, Target: target})
		case ']':
			target := jumps[idx]
			if target == UnmatchedTarget {
				return nil, fmt.Errorf("missing jump target for ']' at %d", idx)
			}
			ir = append(ir, Node{Op: Jnz, Target: target})
		}
	}
	return ir, nil
}

// Dump writes one line per IR node to out, in the format
// "<idx> <OpName> [args...]" used by `bf --dump-ir`.
func Dump(out io.Writer, ir []Node) error {
	for idx, n := range ir {
		var err error
		switch n.Op {
		case Add:
			_, err = fmt.Fprintf(out, "%d Add %d\n", idx, n.Delta)
		case Move:
			_, err = fmt.Fprintf(out, "%d Move %d\n", idx, n.Delta)
		case AddTo:
			_, err = fmt.Fprintf(out, "%d AddTo %d %d\n", idx, n.Offset, n.Sign)
		case AddMul:
			if _, werr := fmt.Fprintf(out, "%d AddMul", idx); werr != nil {
				return werr
			}
			for _, e := range n.Edits {
				if _, werr := fmt.Fprintf(out, " (%d,%d)", e.Offset, e.Factor); werr != nil {
					return werr
				}
			}
			_, err = fmt.Fprintln(out)
		case Output:
			_, err = fmt.Fprintf(out, "%d Output\n", idx)
		case Input:
			_, err = fmt.Fprintf(out, "%d Input\n", idx)
		case Jz:
			_, err = fmt.Fprintf(out, "%d Jz %d\n", idx, n.Target)
		case Jnz:
			_, err = fmt.Fprintf(out, "%d Jnz %d\n", idx, n.Target)
		case SetZero:
			_, err = fmt.Fprintf(out, "%d SetZero\n", idx)
		case Scan:
			_, err = fmt.Fprintf(out, "%d Scan %d\n", idx, n.Delta)
		}
		if err != nil {
			return fmt.Errorf("stderr write failed: %w", err)
		}
	}
	return nil
}
