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

// Package bfbracket matches '[' and ']' in a filtered opcode stream.
package bfbracket

import "github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"

// Unmatched marks a jump with no known partner. Indices into the
// filtered opcode stream are always >= 0, so -1 is a safe sentinel.
const Unmatched = -1

// Match computes, for each index in ops, the matched partner index of
// that position's '[' or ']' (Unmatched elsewhere). It fails with a
// BracketError if the brackets are not balanced.
func Match(ops []byte) ([]int, error) {
	jumps := make([]int, len(ops))
	for i := range jumps {
		jumps[i] = Unmatched
	}

	stack := make([]int, 0, 16)
	for idx, op := range ops {
		switch op {
		case '[':
			stack = append(stack, idx)
		case ']':
			if len(stack) == 0 {
				return nil, bferr.NewBracket("unmatched ']' at %d", idx)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jumps[open] = idx
			jumps[idx] = open
		}
	}

	if len(stack) > 0 {
		return nil, bferr.NewBracket("unmatched '[' at %d", stack[len(stack)-1])
	}

	return jumps, nil
}
