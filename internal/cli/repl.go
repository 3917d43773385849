package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/vegasq/linqcat/internal/logging"
	"github.com/vegasq/linqcat/linq"
	"github.com/vegasq/linqcat/reader"
)

const replPrompt = "linq> "

// lineReader is the part of liner.State the repl uses
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// NewReplCommand creates the repl command, which loads the sources once
// and then runs queries read interactively.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl <file>...",
		Short: "Run queries interactively against loaded files",
		Long: `Load the given files once, then read queries line by line.

Each result is printed in the selected format. Errors are reported and the
session continues. Type \q or exit to quit, \fields to list field names.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := load(rootOpts, args)
			if err != nil {
				return err
			}
			return runInteractive(rootOpts, rows, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().String("history", "", "file to load and save query history")

	return cmd
}

// runInteractive wires liner to the repl loop
func runInteractive(opts *RootOptions, rows linq.List, out, errOut io.Writer) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()
	line.SetCtrlCAborts(true)

	history := opts.Config.History
	if history != "" {
		if f, err := os.Open(history); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				logging.Get().Warn("failed to read history", "path", history, "error", err)
			}
			_ = f.Close()
		}
	}

	err := repl(line, opts, rows, out, errOut)

	if history != "" {
		if f, createErr := os.Create(history); createErr == nil {
			if _, err := line.WriteHistory(f); err != nil {
				logging.Get().Warn("failed to write history", "path", history, "error", err)
			}
			_ = f.Close()
		}
	}
	return err
}

// repl reads and runs queries until end of input or a quit command
func repl(in lineReader, opts *RootOptions, rows linq.List, out, errOut io.Writer) error {
	for {
		text, err := in.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return fmt.Errorf("failed to read query: %w", err)
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		in.AppendHistory(text)

		switch text {
		case `\q`, "exit", "quit":
			return nil
		case `\fields`:
			for _, info := range reader.DiscoverFields(rows) {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", info.Name, info.Type)
			}
			continue
		}

		p, err := linq.Compile(text)
		if err == nil {
			err = execute(opts, p, rows, out)
		}
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}
}
