package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"magang-intel/internal/vacancies"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter and rank vacancies",
	Long:  "Applies the dashboard filters, scores skill matches and prints the ranked vacancies with national statistics for the filtered set.",
	RunE:  runQuery,
}

var (
	queryCriteria vacancies.Criteria
	querySort     string
	queryDir      string
	queryLimit    int
	queryJSON     bool
)

func addCriteriaFlags(cmd *cobra.Command, c *vacancies.Criteria) {
	def := vacancies.DefaultCriteria()
	cmd.Flags().StringVar(&c.Province, "province", def.Province, "Province filter")
	cmd.Flags().StringVar(&c.Category, "category", def.Category, "Category filter")
	cmd.Flags().StringVar(&c.Company, "company", def.Company, "Company filter")
	cmd.Flags().StringVarP(&c.Search, "search", "s", "", "Case-insensitive title search")
	cmd.Flags().StringVar(&c.Skills, "skills", def.Skills, "Comma-separated desired skills")
	c.MaxRatio = vacancies.RatioCeiling(vacancies.DefaultMaxRatio)
	cmd.Flags().Float64Var(c.MaxRatio, "max-ratio", vacancies.DefaultMaxRatio, "Maximum competition ratio (inclusive, 0 keeps only uncontested postings)")
}

func init() {
	addCriteriaFlags(queryCmd, &queryCriteria)
	queryCmd.Flags().StringVar(&querySort, "sort", "", "Column sort (title, company, province, category, quota, registered, ratio, match)")
	queryCmd.Flags().StringVar(&queryDir, "dir", "asc", "Sort direction (asc, desc)")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 20, "Rows to print; 0 prints all")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	svc, err := loadService(cmd.Context(), dataLocation)
	if err != nil {
		return err
	}
	q := vacancies.Query{Criteria: queryCriteria, Limit: queryLimit}
	if querySort != "" {
		q.Sort = vacancies.SortState{Column: querySort, Direction: vacancies.ParseDirection(queryDir)}
	}
	page, err := svc.Query(q)
	if err != nil {
		return fmt.Errorf("failed to run query: %w", err)
	}
	if queryJSON {
		return writeJSON(cmd.OutOrStdout(), page)
	}
	return printPage(cmd.OutOrStdout(), page)
}

func printPage(w io.Writer, page vacancies.Page) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POSISI\tPERUSAHAAN\tPROVINSI\tKATEGORI\tKUOTA\tPENDAFTAR\tRASIO\tMATCH")
	for _, v := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%d\n",
			v.Title, v.Company, v.Province, v.Category, v.Quota, v.Registered, formatRatio(v.CompetitionRatio), v.MatchCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := page.Stats
	fmt.Fprintf(w, "\n%d of %d vacancies shown. Quota %d, registered %d, ratio %s, median %s.\n",
		len(page.Items), page.Total, s.TotalQuota, s.TotalRegistered, formatRatio(s.Ratio), formatRatio(s.MedianRatio))
	return nil
}
