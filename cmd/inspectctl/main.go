// Command inspectctl classifies inspection API failures from the command
// line: recorded fixtures, live probes, and the code and message tables.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kbukum/inspectkit/validation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err, listing validation failures one field per line.
func printError(w io.Writer, err error) {
	fields := validation.FieldErrors(err)
	if len(fields) == 0 {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, "invalid input:")
	for _, fe := range fields {
		fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
	}
}
