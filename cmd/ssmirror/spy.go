package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamtrott/suitesparse-tools/internal/mmarket"
)

// runSpy renders the sparsity pattern of a Matrix Market file to a PNG.
func runSpy(args []string) int {
	fs := flag.NewFlagSet("spy", flag.ExitOnError)

	output := fs.String("output", "", "Output PNG path (default: <matrix>.png)")
	size := fs.Int("size", 800, "Length of the longest image side in pixels")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: ssmirror spy [options] FILE

Render the sparsity pattern of a sparse matrix in Matrix Market format.
Each stored entry becomes one dark pixel.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one input file is required")
		fs.Usage()
		return ExitInvalidArgs
	}
	input := fs.Arg(0)

	f, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	defer f.Close()

	m, err := mmarket.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitParseError
	}

	outPath := *output
	if outPath == "" {
		base := filepath.Base(input)
		outPath = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}

	if err := png.Encode(out, m.Pattern(*size)); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}

	fmt.Fprintf(os.Stderr, "[ssmirror] Wrote %dx%d pattern of %s to %s\n",
		m.Cols, m.Rows, input, outPath)
	return ExitSuccess
}
