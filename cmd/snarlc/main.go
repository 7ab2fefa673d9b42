// Command snarlc reads a single SNARL source file and writes the MIPS
// assembly text the compiler produces for it (spec §6 "External
// interfaces"). It is grounded on the teacher's cmd/ccompiler: a minimal
// read-compile-print driver whose only flag is an optional -out path.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"snarlc/pkg/compiler"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <source.snarl>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	outPath := flag.String("out", "", "output assembly file path (default: input with .asm extension)")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	inPath := flag.Arg(0)
	source, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %q: %v\n", inPath, err)
		os.Exit(1)
	}

	asmText, err := compiler.Compile(string(source))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out := *outPath
	if out == "" {
		out = defaultOutputPath(inPath)
	}
	if err := os.WriteFile(out, []byte(asmText), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %q: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", out)
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	return strings.TrimSuffix(inPath, ext) + ".asm"
}
