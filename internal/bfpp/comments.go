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

import "strings"

// stripComments removes line comments from text, preserving newline
// terminators. For each line, the earliest of "//" or "#" truncates the
// line; the "#" rule does not apply to lines that are #include
// directives (their trimmed-left prefix is exactly "#include").
func stripComments(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	for len(text) > 0 {
		end := strings.IndexByte(text, '\n')
		var line string
		var rest string
		hasNewline := end >= 0
		if hasNewline {
			line = text[:end]
			rest = text[end+1:]
		} else {
			line = text
			rest = ""
		}

		stripped := strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimLeft(stripped, " \t")
		isInclude := strings.HasPrefix(trimmed, "#include")

		cut := len(stripped)
		if pos := strings.Index(stripped, "//"); pos >= 0 && pos < cut {
			cut = pos
		}
		if !isInclude {
			if pos := strings.IndexByte(stripped, '#'); pos >= 0 && pos < cut {
				cut = pos
			}
		}

		out.WriteString(stripped[:cut])
		if hasNewline {
			out.WriteByte('\n')
		}
		text = rest
	}

	return out.String()
}
