package bfio

import (
	"bytes"
	"strings"
	"testing"
)

func TestInputEOFYieldsZero(t *testing.T) {
	in := NewInput(strings.NewReader("A"))
	b, err := in.ReadByte()
	if err != nil || b != 'A' {
		t.Fatalf("ReadByte() = (%v, %v), want ('A', nil)", b, err)
	}
	b, err = in.ReadByte()
	if err != nil || b != 0 {
		t.Fatalf("ReadByte() at EOF = (%v, %v), want (0, nil)", b, err)
	}
}

func TestOutputBuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf)
	if err := out.WriteByte('x'); err != nil {
		t.Fatalf("WriteByte returned error: %v", err)
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if buf.String() != "x" {
		t.Errorf("buf = %q, want %q", buf.String(), "x")
	}
}

func TestTracerLineFormat(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewTracer(&buf)
	if err := tracer.Line(3, 1, 2, 65, "Add 1"); err != nil {
		t.Fatalf("Line returned error: %v", err)
	}
	if err := tracer.Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	want := "step=3 ip=1 ptr=2 cell=65 Add 1\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
