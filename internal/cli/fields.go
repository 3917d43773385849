package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vegasq/linqcat/linq"
	"github.com/vegasq/linqcat/output"
	"github.com/vegasq/linqcat/reader"
)

// NewFieldsCommand creates the fields command, which lists the fields
// found in each source.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <file>...",
		Short: "List the fields of each file",
		Long: `List field names and types. Parquet files report their schema with
nested columns in dot notation; other formats are scanned and report
top-level fields in first-seen order.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(rootOpts, args, cmd.OutOrStdout())
		},
	}
}

func runFields(opts *RootOptions, sources []string, w io.Writer) error {
	var result linq.List
	for _, src := range sources {
		infos, err := sourceFields(opts, src)
		if err != nil {
			return err
		}
		for _, info := range infos {
			result = append(result, linq.NewRecord(
				linq.F("source", linq.Text(src)),
				linq.F("name", linq.Text(info.Name)),
				linq.F("type", linq.Text(info.Type)),
				linq.F("optional", linq.Bool(info.Optional)),
				linq.F("repeated", linq.Bool(info.Repeated)),
			))
		}
	}

	f, err := output.NewFormatter(opts.Config.Format, w)
	if err != nil {
		return err
	}
	return f.Format(result)
}

// sourceFields reports schema fields for a single file, or the fields
// discovered across every file of a glob
func sourceFields(opts *RootOptions, src string) ([]reader.FieldInfo, error) {
	if !reader.IsGlob(src) {
		return reader.Fields(src, opts.readerOptions())
	}
	rows, err := reader.ReadFiles(src, opts.readerOptions())
	if err != nil {
		return nil, err
	}
	return reader.DiscoverFields(rows), nil
}
