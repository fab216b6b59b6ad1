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

import "github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"

// maxTapeLen bounds tape growth so doubling can never wrap around on a
// 64-bit length. It is far larger than any program will reach in
// practice; it exists only to give "tape size overflow" something to
// mean.
const maxTapeLen = 1 << 40

// tape is a dynamically growable array of 8-bit wrapping cells.
type tape struct {
	cells []byte
}

func newTape(capacity int) (*tape, error) {
	if capacity <= 0 {
		return nil, bferr.NewRuntime("tape size overflow")
	}
	return &tape{cells: make([]byte, capacity)}, nil
}

// ensure grows the tape so that index is addressable, doubling the
// length until it fits and zero-filling the new region. It never
// shrinks.
func (t *tape) ensure(index int) error {
	if index < len(t.cells) {
		return nil
	}
	newLen := len(t.cells)
	if newLen == 0 {
		newLen = 1
	}
	for index >= newLen {
		if newLen > maxTapeLen/2 {
			return bferr.NewRuntime("tape size overflow")
		}
		newLen *= 2
	}
	grown := make([]byte, newLen)
	copy(grown, t.cells)
	t.cells = grown
	return nil
}

func (t *tape) get(index int) byte { return t.cells[index] }

func (t *tape) set(index int, value byte) { t.cells[index] = value }

func (t *tape) len() int { return len(t.cells) }
