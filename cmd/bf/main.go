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

// Command bf runs a tape-machine program: bf <path> [--tape N]
// [--max-steps N] [--dump-ir] [--trace] [--no-opt].
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dc0d/onexit"

	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfbracket"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bferr"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bffilter"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfio"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfir"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfopt"
	"github.com/Axiom-Scratch/BF-EXPERIMENT/internal/bfvm"
)

type options struct {
	path     string
	tape     int
	maxSteps uint64
	dumpIR   bool
	trace    bool
	noOpt    bool
}

func parseArgs(args []string) (*options, error) {
	opts := &options{tape: bfvm.DefaultCapacity}
	sawTape := false
	sawMaxSteps := false
	var positional []string

	i := 0
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "--tape":
			if sawTape {
				return nil, bferr.NewUsage("--tape specified more than once")
			}
			sawTape = true
			val, err := requireIntArg(args, &i, "--tape")
			if err != nil {
				return nil, err
			}
			if val <= 0 {
				return nil, bferr.NewUsage("--tape must be positive")
			}
			opts.tape = val

		case "--max-steps":
			if sawMaxSteps {
				return nil, bferr.NewUsage("--max-steps specified more than once")
			}
			sawMaxSteps = true
			val, err := requireUintArg(args, &i, "--max-steps")
			if err != nil {
				return nil, err
			}
			opts.maxSteps = val

		case "--dump-ir":
			opts.dumpIR = true
			i++

		case "--trace":
			opts.trace = true
			i++

		case "--no-opt":
			opts.noOpt = true
			i++

		default:
			if len(arg) >= 1 && arg[0] == '-' && arg != "-" {
				return nil, bferr.NewUsage("unknown flag %q", arg)
			}
			positional = append(positional, arg)
			i++
		}
	}

	if len(positional) != 1 {
		return nil, bferr.NewUsage("expected exactly one program path, got %d", len(positional))
	}
	opts.path = positional[0]
	return opts, nil
}

func requireIntArg(args []string, i *int, flag string) (int, error) {
	raw, err := requireValue(args, i, flag)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, bferr.NewUsage("%s requires an integer argument, got %q", flag, raw)
	}
	return val, nil
}

func requireUintArg(args []string, i *int, flag string) (uint64, error) {
	raw, err := requireValue(args, i, flag)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, bferr.NewUsage("%s requires a non-negative integer argument, got %q", flag, raw)
	}
	return val, nil
}

func requireValue(args []string, i *int, flag string) (string, error) {
	if *i+1 >= len(args) {
		return "", bferr.NewUsage("%s requires an argument", flag)
	}
	val := args[*i+1]
	*i += 2
	return val, nil
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(opts.path)
	if err != nil {
		return bferr.NewSource(opts.path, err)
	}

	filtered := bffilter.Filter(src)
	jumps, err := bfbracket.Match(filtered)
	if err != nil {
		return err
	}
	ir, err := bfir.Build(filtered, jumps)
	if err != nil {
		return err
	}

	if !opts.noOpt {
		ir, err = bfopt.Optimize(ir)
		if err != nil {
			return err
		}
	}

	if opts.dumpIR {
		if err := bfir.Dump(os.Stderr, ir); err != nil {
			return err
		}
	}

	vm, err := bfvm.New(opts.tape)
	if err != nil {
		return err
	}

	in := bfio.NewInput(os.Stdin)
	out := bfio.NewOutput(os.Stdout)
	onexit.Register(func() { out.Flush() })

	var tracer *bfio.Tracer
	if opts.trace {
		tracer = bfio.NewTracer(os.Stderr)
		onexit.Register(func() { tracer.Flush() })
	}

	if err := vm.Run(ir, in, out, tracer, opts.maxSteps); err != nil {
		return err
	}
	if tracer != nil {
		return tracer.Flush()
	}
	return nil
}

func main() {
	err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(bferr.ExitCode("bf", err))
}
