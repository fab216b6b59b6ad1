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
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"
)

// expandRepeats rewrites every `@repeat N {...}` or `@repeat N X` macro
// in text into N literal copies of its body, recursing into nested
// `{...}` bodies.
func expandRepeats(text string) (string, error) {
	out, _, err := parseRepeatSection(text, 0, false)
	if err != nil {
		return "", err
	}
	return out, nil
}

// parseRepeatSection consumes text starting at byte offset i until it
// hits a bare '}' (when untilBrace is set) or runs out of input, and
// returns the rewritten text plus the offset just past the terminator.
func parseRepeatSection(text string, i int, untilBrace bool) (string, int, error) {
	var out strings.Builder

	for i < len(text) {
		if untilBrace && text[i] == '}' {
			return out.String(), i + 1, nil
		}

		if text[i] == '@' && strings.HasPrefix(text[i:], "@repeat") {
			start := i
			i += len("@repeat")

			next, hadWS := skipRepeatWS(text, i)
			if !hadWS {
				return "", 0, bferr.NewPreprocessor("invalid @repeat syntax at byte %d", start)
			}
			i = next

			count, next, err := parseRepeatCount(text, i)
			if err != nil {
				return "", 0, err
			}
			if count == 0 {
				return "", 0, bferr.NewPreprocessor("repeat count must be positive at byte %d", i)
			}
			i = next

			next, hadWS = skipRepeatWS(text, i)
			if !hadWS {
				return "", 0, bferr.NewPreprocessor("invalid @repeat syntax at byte %d", start)
			}
			i = next

			if i >= len(text) {
				return "", 0, bferr.NewPreprocessor("missing repeat target at byte %d", start)
			}

			if text[i] == '{' {
				inner, next, err := parseRepeatSection(text, i+1, true)
				if err != nil {
					return "", 0, err
				}
				for n := uint64(0); n < count; n++ {
					out.WriteString(inner)
				}
				i = next
			} else {
				ch, size, err := nextRepeatRune(text, i)
				if err != nil {
					return "", 0, err
				}
				if unicode.IsSpace(ch) {
					return "", 0, bferr.NewPreprocessor("invalid repeat target at byte %d", i)
				}
				for n := uint64(0); n < count; n++ {
					out.WriteRune(ch)
				}
				i += size
			}
			continue
		}

		ch, size, err := nextRepeatRune(text, i)
		if err != nil {
			return "", 0, err
		}
		out.WriteRune(ch)
		i += size
	}

	if untilBrace {
		return "", 0, bferr.NewPreprocessor("missing '}'")
	}
	return out.String(), i, nil
}

func skipRepeatWS(text string, i int) (int, bool) {
	consumed := false
	for i < len(text) && isRepeatASCIISpace(text[i]) {
		consumed = true
		i++
	}
	return i, consumed
}

func isRepeatASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func parseRepeatCount(text string, start int) (uint64, int, error) {
	i := start
	var value uint64
	saw := false
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		saw = true
		digit := uint64(text[i] - '0')
		if value > (^uint64(0)-digit)/10 {
			return 0, 0, bferr.NewPreprocessor("repeat count overflow")
		}
		value = value*10 + digit
		i++
	}
	if !saw {
		return 0, 0, bferr.NewPreprocessor("expected repeat count at byte %d", start)
	}
	return value, i, nil
}

func nextRepeatRune(text string, i int) (rune, int, error) {
	if i >= len(text) {
		return 0, 0, bferr.NewPreprocessor("unexpected end of input")
	}
	ch, size := utf8.DecodeRuneInString(text[i:])
	if ch == utf8.RuneError && size <= 1 {
		return 0, 0, bferr.NewPreprocessor("invalid utf-8 at byte %d", i)
	}
	return ch, size, nil
}
