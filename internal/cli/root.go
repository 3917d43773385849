// Package cli implements the linqcat command line.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vegasq/linqcat/internal/config"
	"github.com/vegasq/linqcat/internal/logging"
	"github.com/vegasq/linqcat/linq"
	"github.com/vegasq/linqcat/output"
	"github.com/vegasq/linqcat/reader"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string
	Limit      int
	Table      string
	Workers    int
	LogLevel   string

	// Config is resolved from flags, environment and config file before any
	// command runs.
	Config config.Config
}

// NewRootCommand creates the root command. Run without a subcommand it
// loads the given files, runs --query over them and prints the result.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	def := config.Default()
	var query string

	cmd := &cobra.Command{
		Use:   "linqcat [flags] <file>...",
		Short: "Query record files with LINQ-style pipelines",
		Long: `linqcat loads records from Parquet, JSON, JSON Lines, CSV or SQLite files
and runs a chain of operations over them, e.g.

  linqcat -q 'where(active).groupby(dept).select(key.dept as dept, count() as n)' staff.csv

Files may be glob patterns; rows read through a glob carry a _file field.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, query, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "query to run (empty prints the input unchanged)")

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (yaml, json or toml)")
	flags.StringVarP(&opts.Format, "format", "f", def.Format, "output format ("+strings.Join(output.Names(), ", ")+")")
	flags.IntVar(&opts.Limit, "limit", def.Limit, "limit number of result items (0 = unlimited)")
	flags.StringVar(&opts.Table, "table", def.Table, "table to read from SQLite sources")
	flags.IntVar(&opts.Workers, "workers", def.Workers, "files loaded concurrently for glob patterns")
	flags.StringVar(&opts.LogLevel, "log-level", def.Log.Level, "log level (debug, info, warn, error)")

	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewFieldsCommand(opts))

	return cmd
}

// resolve loads configuration, installs the logger and checks the format
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath, cmd.Flags())
	if err != nil {
		return err
	}
	if _, err := logging.Init(cfg.Log.Logging(), cmd.ErrOrStderr()); err != nil {
		return err
	}
	if _, err := output.NewFormatter(cfg.Format, io.Discard); err != nil {
		return err
	}
	o.Config = cfg
	return nil
}

func (o *RootOptions) readerOptions() reader.Options {
	return reader.Options{Table: o.Config.Table, Workers: o.Config.Workers}
}

// load reads every source in order
func load(opts *RootOptions, sources []string) (linq.List, error) {
	var rows linq.List
	for _, src := range sources {
		part, err := reader.ReadFiles(src, opts.readerOptions())
		if err != nil {
			return nil, err
		}
		rows = append(rows, part...)
	}
	logging.Get().Info("loaded sources", "sources", len(sources), "rows", len(rows))
	return rows, nil
}

func runQuery(opts *RootOptions, query string, sources []string, w io.Writer) error {
	p, err := linq.Compile(query)
	if err != nil {
		return err
	}

	rows, err := load(opts, sources)
	if err != nil {
		return err
	}

	return execute(opts, p, rows, w)
}

// execute runs a compiled pipeline and writes its result
func execute(opts *RootOptions, p *linq.Pipeline, rows linq.List, w io.Writer) error {
	start := time.Now()
	result, err := p.Run(rows)
	if err != nil {
		return err
	}
	logging.Get().Debug("ran query", "query", p.String(), "rows", len(rows), "elapsed", time.Since(start))
	result = limit(result, opts.Config.Limit)

	f, err := output.NewFormatter(opts.Config.Format, w)
	if err != nil {
		return err
	}
	if err := f.Format(result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// limit truncates list results to n items; n <= 0 means no limit
func limit(v linq.Value, n int) linq.Value {
	list, ok := v.(linq.List)
	if !ok || n <= 0 || len(list) <= n {
		return v
	}
	return list[:n]
}
