// Package main provides the CLI entry point for sheetstack-go.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetstack-go/pkg/sheetstack"
	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/parser"
)

// cliOptions holds the flag values of one root command.
type cliOptions struct {
	verbose        bool
	jobPath        string
	outputPath     string
	columnWidth    float64
	concurrency    int
	numericColumns bool
	pretty         bool

	logger zerolog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "sheetstack",
		Short: "Stack tables and Excel workbooks into a single sheet",
		Long: `sheetstack-go combines tables and the first sheet of Excel workbooks
into one worksheet, laid out top to bottom, and writes it as xlsx.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if o.verbose {
				level = zerolog.DebugLevel
			}
			o.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).With().Timestamp().Logger()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Log every merged section")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Run an export job file",
		Args:  cobra.NoArgs,
		RunE:  o.runExport,
	}
	exportCmd.Flags().StringVarP(&o.jobPath, "job", "j", "", "Job file (YAML)")
	exportCmd.Flags().StringVarP(&o.outputPath, "output", "o", "", "Output file path (overrides the job)")
	exportCmd.Flags().Float64Var(&o.columnWidth, "width", 0, "Column width (overrides the job)")
	exportCmd.Flags().IntVar(&o.concurrency, "concurrency", 0, "Workbooks decoded at once (overrides the job)")
	exportCmd.Flags().BoolVar(&o.numericColumns, "numeric-columns", false, "Order columns by index instead of by name")
	exportCmd.MarkFlagRequired("job")

	tableCmd := &cobra.Command{
		Use:   "table [input.xlsx]",
		Short: "Print the first sheet of a workbook as a JSON table",
		Args:  cobra.ExactArgs(1),
		RunE:  o.runTable,
	}
	tableCmd.Flags().BoolVar(&o.pretty, "pretty", false, "Pretty-print JSON output")
	tableCmd.Flags().BoolVar(&o.numericColumns, "numeric-columns", false, "Order columns by index instead of by name")

	inspectCmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Print sheet names, ranges and merged regions as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  o.runInspect,
	}
	inspectCmd.Flags().BoolVar(&o.pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(exportCmd, tableCmd, inspectCmd)
	return rootCmd
}

func (o *cliOptions) runExport(cmd *cobra.Command, args []string) error {
	job, err := sheetstack.LoadJob(o.jobPath)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	opts := job.Apply(sheetstack.DefaultOptions())
	if o.columnWidth > 0 {
		opts.ColumnWidth = o.columnWidth
	}
	if o.concurrency > 0 {
		opts.Concurrency = o.concurrency
	}
	if o.numericColumns {
		opts.ColumnOrder = models.ColumnOrderNumeric
	}
	opts.Logger = o.logger

	output := o.outputPath
	if output == "" {
		output = job.OutputPath()
	}
	if output == "" {
		return fmt.Errorf("no output path: set output in the job or pass --output")
	}

	sources, err := job.BuildSources()
	if err != nil {
		return err
	}

	res, err := sheetstack.ExportFile(cmd.Context(), output, sources, opts)
	if err != nil {
		o.logger.Error().Err(err).Msg("export failed")
		return err
	}

	o.logger.Info().Str("output", output).Str("range", res.Range.String()).Msg("workbook written")
	return nil
}

func (o *cliOptions) runTable(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	order := models.ColumnOrderLexical
	if o.numericColumns {
		order = models.ColumnOrderNumeric
	}
	table, err := sheetstack.DecodeToTable(parser.Codec{}, data, order)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	return o.printJSON(cmd.OutOrStdout(), table)
}

// sheetInfo is the JSON shape printed by the inspect command.
type sheetInfo struct {
	Name         string               `json:"name"`
	Range        string               `json:"range"`
	Cells        int                  `json:"cells"`
	MergeRegions []models.MergeRegion `json:"merge_regions,omitempty"`
}

func (o *cliOptions) runInspect(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	wb, err := parser.Codec{}.Decode(data)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	infos := make([]sheetInfo, 0, len(wb.Sheets))
	for _, ns := range wb.Sheets {
		infos = append(infos, sheetInfo{
			Name:         ns.Name,
			Range:        ns.Sheet.ComputeRange(models.ColumnOrderNumeric).String(),
			Cells:        ns.Sheet.Len(),
			MergeRegions: ns.Sheet.MergeRegions(),
		})
	}

	return o.printJSON(cmd.OutOrStdout(), map[string]interface{}{
		"book_name": filepath.Base(args[0]),
		"sheets":    infos,
	})
}

func readInput(ctx context.Context, path string) ([]byte, error) {
	// Validate input file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return sheetstack.File(path).ReadBlob(ctx)
}

func (o *cliOptions) printJSON(w io.Writer, v interface{}) error {
	var (
		jsonData []byte
		err      error
	)
	if o.pretty {
		jsonData, err = json.MarshalIndent(v, "", "  ")
	} else {
		jsonData, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
