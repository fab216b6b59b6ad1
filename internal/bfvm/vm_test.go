package bfvm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfbracket"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfio"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfir"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfopt"
)

// compile builds and, unless raw is set, optimizes the IR for program.
func compile(t *testing.T, program string, raw bool) []bfir.Node {
	t.Helper()
	ops := []byte(program)
	jumps, err := bfbracket.Match(ops)
	if err != nil {
		t.Fatalf("bfbracket.Match(%q) returned error: %v", program, err)
	}
	ir, err := bfir.Build(ops, jumps)
	if err != nil {
		t.Fatalf("bfir.Build(%q) returned error: %v", program, err)
	}
	if raw {
		return ir
	}
	out, err := bfopt.Optimize(ir)
	if err != nil {
		t.Fatalf("bfopt.Optimize(%q) returned error: %v", program, err)
	}
	return out
}

// runProgram runs the whole pipeline end to end, returning any error from
// bracket matching, IR building, optimizing, or execution, rather than
// failing the test outright — callers that expect a pipeline-stage error
// (e.g. an unmatched bracket) need it as an ordinary return value.
func runProgram(t *testing.T, program, stdin string, raw bool) (string, error) {
	t.Helper()
	ops := []byte(program)
	jumps, err := bfbracket.Match(ops)
	if err != nil {
		return "", err
	}
	ir, err := bfir.Build(ops, jumps)
	if err != nil {
		return "", err
	}
	if !raw {
		ir, err = bfopt.Optimize(ir)
		if err != nil {
			return "", err
		}
	}

	vm, err := New(DefaultCapacity)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	in := bfio.NewInput(strings.NewReader(stdin))
	var buf bytes.Buffer
	out := bfio.NewOutput(&buf)
	runErr := vm.Run(ir, in, out, nil, 0)
	return buf.String(), runErr
}

func TestOutputsByte(t *testing.T) {
	for _, raw := range []bool{true, false} {
		got, err := runProgram(t, "+++++.", "", raw)
		if err != nil {
			t.Fatalf("raw=%v: Run returned error: %v", raw, err)
		}
		if got != "\x05" {
			t.Errorf("raw=%v: got %q, want %q", raw, got, "\x05")
		}
	}
}

func TestEchoesInput(t *testing.T) {
	for _, raw := range []bool{true, false} {
		got, err := runProgram(t, ",.", "Q", raw)
		if err != nil {
			t.Fatalf("raw=%v: Run returned error: %v", raw, err)
		}
		if got != "Q" {
			t.Errorf("raw=%v: got %q, want %q", raw, got, "Q")
		}
	}
}

func TestAddMulUpdatesTarget(t *testing.T) {
	// ++++++++[>++++++++<-]>+. computes 8*8+1 = 65 = 'A'.
	for _, raw := range []bool{true, false} {
		got, err := runProgram(t, "++++++++[>++++++++<-]>+.", "", raw)
		if err != nil {
			t.Fatalf("raw=%v: Run returned error: %v", raw, err)
		}
		if got != "A" {
			t.Errorf("raw=%v: got %q, want %q", raw, got, "A")
		}
	}
}

func TestGrowsTapeOnMove(t *testing.T) {
	vm, err := New(1)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ir := compile(t, ">>>>>+.", true)
	in := bfio.NewInput(strings.NewReader(""))
	var buf bytes.Buffer
	out := bfio.NewOutput(&buf)
	if err := vm.Run(ir, in, out, nil, 0); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if buf.String() != "\x01" {
		t.Errorf("got %q, want %q", buf.String(), "\x01")
	}
	if vm.Pointer() != 5 {
		t.Errorf("Pointer() = %d, want 5", vm.Pointer())
	}
}

func TestPointerUnderflowFails(t *testing.T) {
	for _, raw := range []bool{true, false} {
		_, err := runProgram(t, "+[<]", "", raw)
		if err == nil {
			t.Fatalf("raw=%v: expected a pointer underflow error", raw)
		}
		var runtimeErr *bferr.Runtime
		if !errors.As(err, &runtimeErr) {
			t.Errorf("raw=%v: error = %v, want a Runtime error", raw, err)
		}
	}
}

func TestMaxStepsExceeded(t *testing.T) {
	ir := compile(t, "+[+]", true)
	vm, err := New(DefaultCapacity)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	in := bfio.NewInput(strings.NewReader(""))
	var buf bytes.Buffer
	out := bfio.NewOutput(&buf)

	runErr := vm.Run(ir, in, out, nil, 1)
	if runErr == nil {
		t.Fatal("expected a budget error")
	}
	var budgetErr *bferr.Budget
	if !errors.As(runErr, &budgetErr) {
		t.Errorf("error = %v, want a Budget error", runErr)
	}
}

func TestSetZeroEquivalentToRaw(t *testing.T) {
	rawGot, rawErr := runProgram(t, "+[-]", "", true)
	optGot, optErr := runProgram(t, "+[-]", "", false)
	if rawErr != nil || optErr != nil {
		t.Fatalf("unexpected errors: raw=%v opt=%v", rawErr, optErr)
	}
	if rawGot != optGot {
		t.Errorf("raw output %q != optimized output %q", rawGot, optGot)
	}
}
