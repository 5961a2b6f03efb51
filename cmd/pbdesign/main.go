// Command pbdesign is the one-shot design CLI: it computes component
// values for a converter design, prints recommended parts, and can
// sweep the shortlisted combinations through the simulator.
package main

import (
	"fmt"
	"os"

	"github.com/voltlab/powerbench/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "pfc":
		runPFC(os.Args[2:])
	case "buck":
		runBuck(os.Args[2:])
	case "version", "--version":
		fmt.Println(version.Info())
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: pbdesign <command> [flags]

Commands:
  pfc      Design a PFC boost stage and recommend components
  buck     Design a buck converter and recommend components
  version  Print version information

Run 'pbdesign <command> -h' for command flags.
`)
}
