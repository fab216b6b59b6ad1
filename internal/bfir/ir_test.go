package bfir

import (
	"bytes"
	"testing"
)

func TestBuildTranslatesOpcodes(t *testing.T) {
	ops := []byte("+-><.,[]")
	jumps := []int{
		UnmatchedTarget, UnmatchedTarget, UnmatchedTarget, UnmatchedTarget,
		UnmatchedTarget, UnmatchedTarget, 7, 6,
	}

	ir, err := Build(ops, jumps)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(ir) != len(ops) {
		t.Fatalf("len(ir) = %d, want %d", len(ir), len(ops))
	}

	want := []Node{
		{Op: Add, Delta: 1},
		{Op: Add, Delta: -1},
		{Op: Move, Delta: 1},
		{Op: Move, Delta: -1},
		{Op: Output},
		{Op: Input},
		{Op: Jz, Target: 7},
		{Op: Jnz, Target: 6},
	}
	for i := range want {
		if ir[i].Op != want[i].Op || ir[i].Delta != want[i].Delta || ir[i].Target != want[i].Target {
			t.Errorf("ir[%d] = %+v, want %+v", i, ir[i], want[i])
		}
	}
}

func TestBuildRejectsLengthMismatch(t *testing.T) {
	_, err := Build([]byte("++"), []int{UnmatchedTarget})
	if err == nil {
		t.Fatal("expected an error for mismatched ops/jumps lengths")
	}
}

func TestBuildRejectsMissingJumpTarget(t *testing.T) {
	_, err := Build([]byte("["), []int{UnmatchedTarget})
	if err == nil {
		t.Fatal("expected an error for an unmatched jump in the IR builder")
	}
}

func TestDumpFormat(t *testing.T) {
	ir := []Node{
		{Op: Jz, Target: 2},
		{Op: AddTo, Offset: 1, Sign: 1},
		{Op: Jnz, Target: 0},
	}
	var buf bytes.Buffer
	if err := Dump(&buf, ir); err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}

	want := "0 Jz 2\n1 AddTo 1 1\n2 Jnz 0\n"
	if buf.String() != want {
		t.Errorf("Dump output = %q, want %q", buf.String(), want)
	}
}
