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
package bfpp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"
)

// resolveIncludes reads rootPath and recursively splices in every
// #include "path" it finds, detecting cycles via a stack of
// canonicalized paths.
func resolveIncludes(rootPath string) (string, error) {
	var stack []string
	return resolvePath(rootPath, &stack)
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", bferr.NewSource(path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", bferr.NewSource(path, err)
	}
	return resolved, nil
}

func resolvePath(path string, stack *[]string) (string, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return "", err
	}

	for i, p := range *stack {
		if p == canonical {
			chain := append([]string{}, (*stack)[i:]...)
			chain = append(chain, canonical)
			return "", bferr.NewIncludeCycle(chain)
		}
	}
	*stack = append(*stack, canonical)
	defer func() { *stack = (*stack)[:len(*stack)-1] }()

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", bferr.NewSource(path, err)
	}
	text := string(raw)

	baseDir := filepath.Dir(path)
	var out strings.Builder

	remaining := text
	for len(remaining) > 0 {
		end := strings.IndexByte(remaining, '\n')
		var line, rest string
		hasNewline := end >= 0
		if hasNewline {
			line = remaining[:end]
			rest = remaining[end+1:]
		} else {
			line = remaining
			rest = ""
		}

		stripped := strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimLeft(stripped, " \t")

		if strings.HasPrefix(trimmed, "#include") {
			includePath, perr := parseIncludePath(trimmed, path)
			if perr != nil {
				return "", perr
			}
			if filepath.IsAbs(includePath) {
				return "", bferr.NewPreprocessor("include error in '%s': include path must be relative", path)
			}
			fullPath := filepath.Join(baseDir, includePath)
			resolved, rerr := resolvePath(fullPath, stack)
			if rerr != nil {
				return "", rerr
			}
			out.WriteString(resolved)
			if hasNewline && !strings.HasSuffix(resolved, "\n") {
				out.WriteByte('\n')
			}
		} else {
			out.WriteString(stripped)
			if hasNewline {
				out.WriteByte('\n')
			}
		}

		remaining = rest
	}

	return out.String(), nil
}

// parseIncludePath extracts PATH from a trimmed line of the form
// `#include "PATH"` optionally followed by whitespace and a comment.
func parseIncludePath(trimmed, path string) (string, error) {
	rest := strings.TrimLeft(trimmed[len("#include"):], " \t")
	if !strings.HasPrefix(rest, "\"") {
		return "", bferr.NewPreprocessor("include error in '%s': invalid include syntax", path)
	}
	rest = rest[1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", bferr.NewPreprocessor("include error in '%s': invalid include syntax", path)
	}
	pathStr := rest[:end]
	if pathStr == "" {
		return "", bferr.NewPreprocessor("include error in '%s': invalid include syntax", path)
	}

	tail := strings.TrimLeft(rest[end+1:], " \t")
	if tail != "" && !strings.HasPrefix(tail, "//") && !strings.HasPrefix(tail, "#") {
		return "", bferr.NewPreprocessor("include error in '%s': invalid include syntax", path)
	}

	return pathStr, nil
}
