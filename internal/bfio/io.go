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

// Package bfio wraps the VM's byte streams: an input reader where EOF
// quietly yields 0 rather than an error, a buffered output writer with
// an explicit flush, and a formatted per-instruction trace sink.
package bfio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"
)

// Input reads one byte at a time. EOF is not an error: ReadByte returns
// (0, nil) once the underlying reader is exhausted.
type Input struct {
	r   *bufio.Reader
	buf [1]byte
}

func NewInput(r io.Reader) *Input {
	return &Input{r: bufio.NewReader(r)}
}

func (in *Input) ReadByte() (byte, error) {
	n, err := in.r.Read(in.buf[:])
	if err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, bferr.NewSource("stdin", err)
	}
	if n == 0 {
		return 0, nil
	}
	return in.buf[0], nil
}

// Output is a buffered byte sink with an explicit Flush.
type Output struct {
	w *bufio.Writer
}

func NewOutput(w io.Writer) *Output {
	return &Output{w: bufio.NewWriter(w)}
}

func (out *Output) WriteByte(b byte) error {
	if err := out.w.WriteByte(b); err != nil {
		return bferr.NewSource("stdout", err)
	}
	return nil
}

func (out *Output) Flush() error {
	if err := out.w.Flush(); err != nil {
		return bferr.NewSource("stdout", err)
	}
	return nil
}

// Tracer formats one line per executed instruction:
// "step=<n> ip=<i> ptr=<p> cell=<c> <Op> [args]\n".
type Tracer struct {
	w *bufio.Writer
}

func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: bufio.NewWriter(w)}
}

// Line writes one preformatted trace record. Callers in internal/bfvm
// build the "<Op> [args]" suffix; Tracer only owns the common prefix
// and the buffering/flush lifecycle.
func (t *Tracer) Line(step uint64, ip, ptr int, cell byte, rest string) error {
	if _, err := fmt.Fprintf(t.w, "step=%d ip=%d ptr=%d cell=%d %s\n", step, ip, ptr, cell, rest); err != nil {
		return bferr.NewSource("stderr", err)
	}
	return nil
}

func (t *Tracer) Flush() error {
	if err := t.w.Flush(); err != nil {
		return bferr.NewSource("stderr", err)
	}
	return nil
}
