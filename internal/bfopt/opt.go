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

// Package bfopt rewrites IR to collapse linear runs of Add/Move
// and recognize idiomatic loop shapes, without changing observable
// behavior: output bytes, input reads, and termination classification
// are identical before and after optimization for every well-formed
// program.
package bfopt

import (
	"sort"

	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfir"
)

// Optimize runs the fixed five-pass pipeline: merge_linear ->
// rebuild_jumps -> loop_analysis -> peephole (= merge_linear) ->
// rebuild_jumps.
func Optimize(ir []bfir.Node) ([]bfir.Node, error) {
	ir = MergeLinear(ir)
	if err := RebuildJumps(ir); err != nil {
		return nil, err
	}
	ir = LoopAnalysis(ir)
	ir = MergeLinear(ir) // peephole
	if err := RebuildJumps(ir); err != nil {
		return nil, err
	}
	return ir, nil
}

// MergeLinear coalesces maximal runs of Add into one Add (and likewise
// for Move), dropping runs that sum to zero. A run whose sum overflows
// int32 is split into multiple Add/Move nodes that together sum to it.
func MergeLinear(ir []bfir.Node) []bfir.Node {
	out := make([]bfir.Node, 0, len(ir))
	i := 0
	for i < len(ir) {
		switch ir[i].Op {
		case bfir.Add:
			var acc int64
			// A dropped zero-sum run can leave a same-op node at the
			// end of out; fold it into this run.
			for len(out) > 0 && out[len(out)-1].Op == bfir.Add {
				acc += int64(out[len(out)-1].Delta)
				out = out[:len(out)-1]
			}
			for i < len(ir) && ir[i].Op == bfir.Add {
				acc += int64(ir[i].Delta)
				i++
			}
			out = pushChunks(out, bfir.Add, acc)
		case bfir.Move:
			var acc int64
			for len(out) > 0 && out[len(out)-1].Op == bfir.Move {
				acc += int64(out[len(out)-1].Delta)
				out = out[:len(out)-1]
			}
			for i < len(ir) && ir[i].Op == bfir.Move {
				acc += int64(ir[i].Delta)
				i++
			}
			out = pushChunks(out, bfir.Move, acc)
		default:
			out = append(out, ir[i])
			i++
		}
	}
	return out
}

func pushChunks(out []bfir.Node, op bfir.Op, acc int64) []bfir.Node {
	if acc == 0 {
		return out
	}
	const maxI32 = int64(1<<31 - 1)
	const minI32 = -int64(1 << 31)
	for acc != 0 {
		chunk := acc
		if chunk > maxI32 {
			chunk = maxI32
		} else if chunk < minI32 {
			chunk = minI32
		}
		out = append(out, bfir.Node{Op: op, Delta: int32(chunk)})
		acc -= chunk
	}
	return out
}

// RebuildJumps re-derives Jz/Jnz partner indices from bracket structure
// alone: a left-to-right scan with an index stack. Stale payload values
// (left behind by a pass that removed elements) are overwritten
// unconditionally, so they may be arbitrary going in.
func RebuildJumps(ir []bfir.Node) error {
	stack := make([]int, 0, 16)
	for idx := range ir {
		switch ir[idx].Op {
		case bfir.Jz:
			stack = append(stack, idx)
		case bfir.Jnz:
			if len(stack) == 0 {
				return bferr.NewBracket("unmatched ']' at %d", idx)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			ir[open].Target = idx
			ir[idx].Target = open
		}
	}
	if len(stack) > 0 {
		return bferr.NewBracket("unmatched '[' at %d", stack[len(stack)-1])
	}
	return nil
}

// LoopAnalysis scans for top-level matched Jz/Jnz pairs and rewrites
// recognized idioms (AddTo, Scan, SetZero, AddMul) into single nodes.
// Loops that match no idiom are copied verbatim. Checked in priority
// order: AddTo, Scan, SetZero, AddMul.
func LoopAnalysis(ir []bfir.Node) []bfir.Node {
	out := make([]bfir.Node, 0, len(ir))
	i := 0
	for i < len(ir) {
		if node, next, ok := matchAddTo(ir, i); ok {
			out = append(out, node)
			i = next
			continue
		}
		if node, next, ok := matchScan(ir, i); ok {
			out = append(out, node)
			i = next
			continue
		}
		if node, next, ok := matchSetZero(ir, i); ok {
			out = append(out, node)
			i = next
			continue
		}
		if node, next, ok := matchAddMul(ir, i); ok {
			out = append(out, node)
			i = next
			continue
		}

		out = append(out, ir[i])
		i++
	}
	return out
}

// matchAddTo recognizes body = Add(-1), Move(o), Add(s), Move(-o), with
// s in {+1,-1} and |o| >= 1.
func matchAddTo(ir []bfir.Node, i int) (bfir.Node, int, bool) {
	if i+5 >= len(ir) {
		return bfir.Node{}, 0, false
	}
	jz := ir[i]
	if jz.Op != bfir.Jz || jz.Target != i+5 {
		return bfir.Node{}, 0, false
	}
	dec := ir[i+1]
	if dec.Op != bfir.Add || dec.Delta != -1 {
		return bfir.Node{}, 0, false
	}
	mv1 := ir[i+2]
	if mv1.Op != bfir.Move || mv1.Delta == 0 {
		return bfir.Node{}, 0, false
	}
	sign := ir[i+3]
	if sign.Op != bfir.Add || (sign.Delta != 1 && sign.Delta != -1) {
		return bfir.Node{}, 0, false
	}
	mv2 := ir[i+4]
	if mv2.Op != bfir.Move || mv2.Delta != -mv1.Delta {
		return bfir.Node{}, 0, false
	}
	jnz := ir[i+5]
	if jnz.Op != bfir.Jnz || jnz.Target != i {
		return bfir.Node{}, 0, false
	}
	return bfir.Node{Op: bfir.AddTo, Offset: mv1.Delta, Sign: sign.Delta}, i + 6, true
}

// matchScan recognizes body = Move(±1).
func matchScan(ir []bfir.Node, i int) (bfir.Node, int, bool) {
	if i+2 >= len(ir) {
		return bfir.Node{}, 0, false
	}
	jz := ir[i]
	if jz.Op != bfir.Jz || jz.Target != i+2 {
		return bfir.Node{}, 0, false
	}
	mv := ir[i+1]
	if mv.Op != bfir.Move || (mv.Delta != 1 && mv.Delta != -1) {
		return bfir.Node{}, 0, false
	}
	jnz := ir[i+2]
	if jnz.Op != bfir.Jnz || jnz.Target != i {
		return bfir.Node{}, 0, false
	}
	return bfir.Node{Op: bfir.Scan, Delta: mv.Delta}, i + 3, true
}

// matchSetZero recognizes body = Add(+1) or Add(-1).
func matchSetZero(ir []bfir.Node, i int) (bfir.Node, int, bool) {
	if i+2 >= len(ir) {
		return bfir.Node{}, 0, false
	}
	jz := ir[i]
	if jz.Op != bfir.Jz || jz.Target != i+2 {
		return bfir.Node{}, 0, false
	}
	add := ir[i+1]
	if add.Op != bfir.Add || (add.Delta != 1 && add.Delta != -1) {
		return bfir.Node{}, 0, false
	}
	jnz := ir[i+2]
	if jnz.Op != bfir.Jnz || jnz.Target != i {
		return bfir.Node{}, 0, false
	}
	return bfir.Node{Op: bfir.SetZero}, i + 3, true
}

// matchAddMul recognizes a general linear loop: body contains only Add
// and Move, the running relative offset returns to 0 at loop end, and
// the net delta at offset 0 is exactly -1.
func matchAddMul(ir []bfir.Node, i int) (bfir.Node, int, bool) {
	if i >= len(ir) || ir[i].Op != bfir.Jz {
		return bfir.Node{}, 0, false
	}
	target := ir[i].Target
	if target <= i || target >= len(ir) {
		return bfir.Node{}, 0, false
	}
	if ir[target].Op != bfir.Jnz || ir[target].Target != i {
		return bfir.Node{}, 0, false
	}

	var rel int64
	deltas := make(map[int32]int64)
	offsetsSeen := make([]int32, 0)

	for _, n := range ir[i+1 : target] {
		switch n.Op {
		case bfir.Add:
			offset := int32(rel)
			if int64(offset) != rel {
				return bfir.Node{}, 0, false
			}
			if _, ok := deltas[offset]; !ok {
				offsetsSeen = append(offsetsSeen, offset)
			}
			deltas[offset] += int64(n.Delta)
		case bfir.Move:
			rel += int64(n.Delta)
			if rel < -(1<<31) || rel > (1<<31-1) {
				return bfir.Node{}, 0, false
			}
		default:
			return bfir.Node{}, 0, false
		}
	}

	if rel != 0 {
		return bfir.Node{}, 0, false
	}
	if deltas[0] != -1 {
		return bfir.Node{}, 0, false
	}

	sort.Slice(offsetsSeen, func(a, b int) bool { return offsetsSeen[a] < offsetsSeen[b] })
	edits := make([]bfir.Edit, 0, len(offsetsSeen))
	for _, offset := range offsetsSeen {
		if offset == 0 {
			continue
		}
		value := deltas[offset]
		if value == 0 {
			continue
		}
		if value < -(1<<31) || value > (1<<31-1) {
			return bfir.Node{}, 0, false
		}
		edits = append(edits, bfir.Edit{Offset: offset, Factor: int32(value)})
	}

	return bfir.Node{Op: bfir.AddMul, Edits: edits}, target + 1, true
}
