package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-matches/internal/export"
)

var (
	exportFormat string
	exportPreset string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the dataset, optionally narrowed by a preset, as CSV, JSON, XML or YAML",
	Long: `Load the dataset, replay a saved preset when --preset is given and write the
resulting games to the export directory. The file is named after the preset's
filter tokens joined by "_", or "all_data" when no filter is applied.

Example:
  lolmatches export --format yaml --preset "ahri wins"`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: csv, json, xml or yaml")
	exportCmd.Flags().StringVar(&exportPreset, "preset", "", "replay this preset before exporting")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "write to stdout instead of the export directory")
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	records, history, err := loadPresetRecords(exportPreset)
	if err != nil {
		return err
	}

	if exportStdout {
		return export.Write(os.Stdout, format, records)
	}
	path, err := export.Save(exportDir, history, format, records)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Saved %d games to %s\n", len(records), path)
	return nil
}
