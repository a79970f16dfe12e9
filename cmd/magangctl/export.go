package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"magang-intel/internal/vacancies"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered, ranked vacancies as CSV",
	RunE:  runExport,
}

var (
	exportCriteria vacancies.Criteria
	exportOutput   string
)

func init() {
	addCriteriaFlags(exportCmd, &exportCriteria)
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output CSV path (default magang-intel-results-<date>.csv; - for stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	svc, err := loadService(cmd.Context(), dataLocation)
	if err != nil {
		return err
	}
	q := vacancies.Query{Criteria: exportCriteria}

	if exportOutput == "-" {
		_, err := svc.Export(cmd.OutOrStdout(), q)
		return err
	}
	path := exportOutput
	if path == "" {
		path = vacancies.ExportFilename(time.Now())
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	n, err := svc.Export(f, q)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", n, path)
	return nil
}
