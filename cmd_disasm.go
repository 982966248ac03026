package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"lumen/compiler"
	"lumen/debug"
)

type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Print the bytecode disassembly of a source file" }
func (*disasmCmd) Usage() string {
	return `disasm <file>:
  Compile a source file and print its bytecode listing without running it.
`
}
func (d *disasmCmd) SetFlags(f *flag.FlagSet) {}

func (d *disasmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return exitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return exitUsageError
	}

	c, ok, errs := compiler.Compile(string(data))
	if !ok {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return exitCompileError
	}

	fmt.Print(debug.DisassembleChunk(c, args[0]))
	return subcommands.ExitSuccess
}
