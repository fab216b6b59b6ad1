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

// Command bfpp runs the preprocessor standalone: bfpp <input> -o <output>.
package main

import (
	"fmt"
	"os"

	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfio"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfpp"
)

type options struct {
	input  string
	output string
}

func parseArgs(args []string) (*options, error) {
	opts := &options{}
	sawOutput := false
	var positional []string

	i := 0
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "-o":
			if sawOutput {
				return nil, bferr.NewUsage("-o specified more than once")
			}
			if i+1 >= len(args) {
				return nil, bferr.NewUsage("-o requires an argument")
			}
			sawOutput = true
			opts.output = args[i+1]
			i += 2
		default:
			if len(arg) >= 1 && arg[0] == '-' && arg != "-" {
				return nil, bferr.NewUsage("unknown flag %q", arg)
			}
			positional = append(positional, arg)
			i++
		}
	}

	if len(positional) != 1 {
		return nil, bferr.NewUsage("expected exactly one input path, got %d", len(positional))
	}
	if !sawOutput {
		return nil, bferr.NewUsage("-o <output> is required")
	}
	opts.input = positional[0]
	return opts, nil
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	expanded, err := bfpp.Preprocess(opts.input)
	if err != nil {
		return err
	}

	return bfio.WriteFileAtomic(opts.output, []byte(expanded), 0o644)
}

func main() {
	err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(bferr.ExitCode("bfpp", err))
}
