package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/wakerefresh/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history to CSV or PDF",
	Long: `Writes every check-in, sorted by date, with its Refresh Score.
Use --out - to print CSV to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format (csv or pdf)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default: wake-up-refresh_<today>.<format>)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "pdf" {
		return fmt.Errorf("unknown format: %s (available: csv, pdf)", exportFormat)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.gateway.Load(context.Background())
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	var data []byte
	switch exportFormat {
	case "csv":
		data = []byte(export.ToCSV(res.Entries))
	case "pdf":
		data, err = export.ToPDF(res.Entries, "Wake-Up Refresh report")
		if err != nil {
			return fmt.Errorf("rendering pdf: %w", err)
		}
	}

	if exportOut == "-" {
		if exportFormat == "pdf" {
			return fmt.Errorf("pdf export needs a file, not stdout")
		}
		fmt.Println(string(data))
		return nil
	}

	path := exportOut
	if path == "" {
		path = export.Filename(today(), exportFormat)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	fmt.Printf("✓ Exported %d check-ins to %s (%s)\n", len(res.Entries), path, humanize.Bytes(uint64(len(data))))
	return nil
}
