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

// Package bffilter reduces an arbitrary byte stream to the eight
// recognized opcodes, discarding everything else.
package bffilter

// opcodes is the closed set of bytes that survive filtering.
var opcodes = [256]bool{
	'+': true, '-': true, '>': true, '<': true,
	'.': true, ',': true, '[': true, ']': true,
}

// Filter returns a new slice containing only the bytes of src that are
// one of the eight opcodes, in order. Filter(Filter(s)) == Filter(s)
// for every s, since filtering only ever removes bytes.
func Filter(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for _, b := range src {
		if opcodes[b] {
			out = append(out, b)
		}
	}
	return out
}
