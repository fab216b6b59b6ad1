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

// Package bfpp implements the bfpp preprocessor: recursive #include
// splicing with cycle detection, line-comment stripping, and @repeat
// macro expansion, run in that order.
package bfpp

// Preprocess resolves every #include in the file at rootPath, strips
// line comments from the result, then expands every @repeat macro,
// returning the final source text ready for the core pipeline.
func Preprocess(rootPath string) (string, error) {
	resolved, err := resolveIncludes(rootPath)
	if err != nil {
		return "", err
	}
	stripped := stripComments(resolved)
	expanded, err := expandRepeats(stripped)
	if err != nil {
		return "", err
	}
	return expanded, nil
}
