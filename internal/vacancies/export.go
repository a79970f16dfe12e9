package vacancies

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// UndefinedRatioText is written in place of a ratio that cannot be computed.
const UndefinedRatioText = "—"

var csvHeader = []string{"Posisi", "Perusahaan", "Provinsi", "Kategori", "Kuota", "Pendaftar", "Rasio"}

// WriteCSV writes items as CSV with a header row.
func WriteCSV(w io.Writer, items []Enriched) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, v := range items {
		row := []string{
			v.Title,
			v.Company,
			v.Province,
			v.Category,
			strconv.Itoa(v.Quota),
			strconv.Itoa(v.Registered),
			formatRatio(v.CompetitionRatio),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", v.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatRatio(r *float64) string {
	if r == nil {
		return UndefinedRatioText
	}
	return strconv.FormatFloat(*r, 'f', 2, 64)
}

// ExportFilename names a CSV download made at now.
func ExportFilename(now time.Time) string {
	return "magang-intel-results-" + now.Format("2006-01-02") + ".csv"
}
