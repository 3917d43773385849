package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/vegasq/linqcat/internal/cli"
	"github.com/vegasq/linqcat/linq"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var perr *linq.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintf(os.Stderr, "\nQuery format: operation(arg, ...).operation(...)\n")
			fmt.Fprintf(os.Stderr, "Operations: %v\n", linq.Verbs())
			fmt.Fprintf(os.Stderr, "Example: where(active).orderby(age).select(name, age as years)\n")
		}
		os.Exit(1)
	}
}
