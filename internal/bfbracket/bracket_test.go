package bfbracket

import "testing"

func TestMatchNestedJumps(t *testing.T) {
	ops := []byte("+[->+[-]<]")
	jumps, err := Match(ops)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}

	outerOpen := 1
	outerClose := 9
	innerOpen := 5
	innerClose := 7

	if jumps[outerOpen] != outerClose || jumps[outerClose] != outerOpen {
		t.Errorf("outer loop: got open->%d close->%d, want %d/%d",
			jumps[outerOpen], jumps[outerClose], outerClose, outerOpen)
	}
	if jumps[innerOpen] != innerClose || jumps[innerClose] != innerOpen {
		t.Errorf("inner loop: got open->%d close->%d, want %d/%d",
			jumps[innerOpen], jumps[innerClose], innerClose, innerOpen)
	}
}

func TestMatchUnmatchedClose(t *testing.T) {
	_, err := Match([]byte("+]"))
	if err == nil {
		t.Fatal("expected an error for unmatched ']'")
	}
	if got := err.Error(); got != "unmatched ']' at 1" {
		t.Errorf("Error() = %q, want %q", got, "unmatched ']' at 1")
	}
}

func TestMatchUnmatchedOpen(t *testing.T) {
	_, err := Match([]byte("[+"))
	if err == nil {
		t.Fatal("expected an error for unmatched '['")
	}
	if got := err.Error(); got != "unmatched '[' at 0" {
		t.Errorf("Error() = %q, want %q", got, "unmatched '[' at 0")
	}
}

func TestMatchEmptyIsBalanced(t *testing.T) {
	jumps, err := Match(nil)
	if err != nil {
		t.Fatalf("Match(nil) returned error: %v", err)
	}
	if len(jumps) != 0 {
		t.Errorf("Match(nil) = %v, want empty", jumps)
	}
}
