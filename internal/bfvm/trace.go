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
package bfvm

import (
	"fmt"
	"strings"

	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfir"
)

// traceArgs renders the "<Opname> [args]" suffix of one trace line.
func traceArgs(n bfir.Node) string {
	switch n.Op {
	case bfir.Add:
		return fmt.Sprintf("Add %d", n.Delta)
	case bfir.Move:
		return fmt.Sprintf("Move %d", n.Delta)
	case bfir.Output:
		return "Output"
	case bfir.Input:
		return "Input"
	case bfir.Jz:
		return fmt.Sprintf("Jz %d", n.Target)
	case bfir.Jnz:
		return fmt.Sprintf("Jnz %d", n.Target)
	case bfir.SetZero:
		return "SetZero"
	case bfir.Scan:
		return fmt.Sprintf("Scan %d", n.Delta)
	case bfir.AddTo:
		return fmt.Sprintf("AddTo %d %d", n.Offset, n.Sign)
	case bfir.AddMul:
		var b strings.Builder
		b.WriteString("AddMul")
		for _, e := range n.Edits {
			fmt.Fprintf(&b, " (%d,%d)", e.Offset, e.Factor)
		}
		return b.String()
	default:
		return n.Op.String()
	}
}
