package bferr

import "testing"

func TestExitCodeUsageDiffersByBinary(t *testing.T) {
	err := NewUsage("bad flag")
	if got := ExitCode("bf", err); got != 2 {
		t.Errorf("ExitCode(\"bf\", usage) = %d, want 2", got)
	}
	if got := ExitCode("bfpp", err); got != 1 {
		t.Errorf("ExitCode(\"bfpp\", usage) = %d, want 1", got)
	}
}

func TestExitCodeNonUsageIsOneRegardlessOfBinary(t *testing.T) {
	errs := []error{
		NewRuntime("pointer underflow"),
		NewSource("prog.bf", errTest{"boom"}),
		&Budget{},
		NewBracket("unmatched '[' at 0"),
		NewPreprocessor("bad syntax"),
		NewIncludeCycle([]string{"a", "b", "a"}),
	}
	for _, err := range errs {
		for _, binary := range []string{"bf", "bfpp"} {
			if got := ExitCode(binary, err); got != 1 {
				t.Errorf("ExitCode(%q, %v) = %d, want 1", binary, err, got)
			}
		}
	}
}

func TestExitCodeNilIsZero(t *testing.T) {
	if got := ExitCode("bf", nil); got != 0 {
		t.Errorf("ExitCode(\"bf\", nil) = %d, want 0", got)
	}
}

func TestIncludeCycleRendersChain(t *testing.T) {
	err := NewIncludeCycle([]string{"a.bf", "b.bf", "a.bf"})
	want := "include cycle: a.bf -> b.bf -> a.bf"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBudgetMessage(t *testing.T) {
	if got := (&Budget{}).Error(); got != "max steps exceeded" {
		t.Errorf("Error() = %q, want %q", got, "max steps exceeded")
	}
}

type errTest struct{ msg string }

func (e errTest) Error() string { return e.msg }
