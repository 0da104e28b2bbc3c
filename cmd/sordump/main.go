// The sordump command prints a human-readable dump of a SOR file's blocks.
// It is a development aid, not the JSON/CBOR output driver described by the
// format's external interface.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jamesharrison/gosor"
)

const usage = `usage: sordump INPUT

Reads a SOR file from INPUT and writes a structural dump to stdout.
`

func main() {
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	f, err := sor.ParsePath(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("sordump: %w", err))
		os.Exit(1)
	}

	if err := sor.Dump(os.Stdout, f); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("sordump: %w", err))
		os.Exit(1)
	}
}
