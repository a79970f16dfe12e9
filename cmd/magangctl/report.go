package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"magang-intel/internal/vacancies"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print dataset-wide aggregates",
	Long:  "Prints national statistics, or groups the whole dataset by province, company or category and prints the top groups by a metric.",
	RunE:  runReport,
}

var (
	reportBy     string
	reportMetric string
	reportTop    int
	reportJSON   bool
)

func init() {
	reportCmd.Flags().StringVar(&reportBy, "by", "", "Group by province, company or category; empty prints national stats")
	reportCmd.Flags().StringVar(&reportMetric, "metric", string(vacancies.MetricPositions), "Ranking metric (positions, quota, registered, companies)")
	reportCmd.Flags().IntVarP(&reportTop, "top", "n", 10, "Number of groups to print")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	svc, err := loadService(cmd.Context(), dataLocation)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if reportBy == "" {
		stats, err := svc.National()
		if err != nil {
			return err
		}
		if reportJSON {
			return writeJSON(out, stats)
		}
		fmt.Fprintf(out, "Positions:        %d\n", stats.Positions)
		fmt.Fprintf(out, "Companies:        %d\n", stats.UniqueCompanies)
		fmt.Fprintf(out, "Total quota:      %d\n", stats.TotalQuota)
		fmt.Fprintf(out, "Total registered: %d\n", stats.TotalRegistered)
		fmt.Fprintf(out, "Ratio:            %s\n", formatRatio(stats.Ratio))
		fmt.Fprintf(out, "Median ratio:     %s\n", formatRatio(stats.MedianRatio))
		fmt.Fprintf(out, "Mean ratio:       %s\n", formatRatio(stats.MeanRatio))
		return nil
	}

	by, err := parseGroupKey(reportBy)
	if err != nil {
		return err
	}
	groups, err := svc.Top(by, vacancies.Metric(reportMetric), reportTop)
	if err != nil {
		return err
	}
	if reportJSON {
		return writeJSON(out, groups)
	}
	return printGroups(out, groups)
}

func parseGroupKey(raw string) (vacancies.GroupKey, error) {
	switch key := vacancies.GroupKey(raw); key {
	case vacancies.GroupProvince, vacancies.GroupCompany, vacancies.GroupCategory:
		return key, nil
	}
	return "", fmt.Errorf("unknown grouping %q (want province, company or category)", raw)
}

func printGroups(w io.Writer, groups []vacancies.GroupAggregate) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tPOSITIONS\tCOMPANIES\tQUOTA\tREGISTERED\tRATIO")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
			g.Key, g.Positions, g.UniqueCompanies, g.TotalQuota, g.TotalRegistered, formatRatio(g.Ratio))
	}
	return tw.Flush()
}
