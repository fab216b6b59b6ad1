package bfpp

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) returned error: %v", path, err)
	}
}

func TestResolveIncludesSplicesContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib.bf"), "+++")
	writeFile(t, filepath.Join(dir, "main.bf"), "#include \"lib.bf\"\n.")

	got, err := resolveIncludes(filepath.Join(dir, "main.bf"))
	if err != nil {
		t.Fatalf("resolveIncludes returned error: %v", err)
	}
	if got != "+++\n." {
		t.Errorf("got %q, want %q", got, "+++\n.")
	}
}

func TestResolveIncludesDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bf"), "#include \"b.bf\"\n")
	writeFile(t, filepath.Join(dir, "b.bf"), "#include \"a.bf\"\n")

	_, err := resolveIncludes(filepath.Join(dir, "a.bf"))
	if err == nil {
		t.Fatal("expected an include cycle error")
	}
	if got := err.Error(); len(got) == 0 || got[:len("include cycle:")] != "include cycle:" {
		t.Errorf("Error() = %q, want it to start with %q", got, "include cycle:")
	}
}

func TestResolveIncludesRejectsAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.bf"), "#include \"/etc/passwd\"\n")

	_, err := resolveIncludes(filepath.Join(dir, "main.bf"))
	if err == nil {
		t.Fatal("expected an error for an absolute include path")
	}
}

func TestResolveIncludesRejectsMalformedDirective(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.bf"), "#include lib.bf\n")

	_, err := resolveIncludes(filepath.Join(dir, "main.bf"))
	if err == nil {
		t.Fatal("expected an error for a missing quoted path")
	}
}

func TestResolveIncludesNestedRelativeToIncludingFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("Mkdir returned error: %v", err)
	}
	writeFile(t, filepath.Join(dir, "sub", "inner.bf"), ".")
	writeFile(t, filepath.Join(dir, "sub", "mid.bf"), "#include \"inner.bf\"\n")
	writeFile(t, filepath.Join(dir, "main.bf"), "#include \"sub/mid.bf\"\n+")

	got, err := resolveIncludes(filepath.Join(dir, "main.bf"))
	if err != nil {
		t.Fatalf("resolveIncludes returned error: %v", err)
	}
	if got != ".\n+" {
		t.Errorf("got %q, want %q", got, ".\n+")
	}
}
