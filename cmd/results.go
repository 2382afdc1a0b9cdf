package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/report"
	"github.com/abhisek/studybuddy/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Browse and export finished practice rounds",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent practice rounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		mode, _ := cmd.Flags().GetString("mode")

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.ResultRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		var rows [][]string
		for _, r := range results {
			if mode != "" && r.Summary.Mode != mode {
				continue
			}
			rows = append(rows, []string{
				itoa(r.ID),
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				quiz.ModeLabel(r.Summary.Mode),
				quiz.DifficultyLabel(r.Summary.Difficulty),
				r.Summary.ScoreLine(),
			})
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No practice rounds recorded yet.")
			return nil
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "Finished", "Mode", "Difficulty", "Score"}, rows)
		return nil
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the review of one practice round",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadResult(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Finished:  %s\n\n", r.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Print(r.Summary.Text())
		return nil
	},
}

var resultsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export one practice round as a PDF, XLSX or text report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		dir, _ := cmd.Flags().GetString("dir")

		f, err := report.ParseFormat(format)
		if err != nil {
			return err
		}
		r, err := loadResult(cmd, args[0])
		if err != nil {
			return err
		}
		path, err := report.SaveFile(dir, f, r.Summary, r.Timestamp)
		if err != nil {
			return err
		}
		fmt.Println("Saved", path)
		return nil
	},
}

func loadResult(cmd *cobra.Command, arg string) (*store.Result, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("result id must be a number, got %q", arg)
	}

	_, s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	r, err := s.ResultRepo().Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("result %d not found", id)
	}
	return r, nil
}

func init() {
	resultsListCmd.Flags().IntP("limit", "n", 20, "Number of rounds to show")
	resultsListCmd.Flags().StringP("mode", "m", "", "Filter by practice mode")
	resultsExportCmd.Flags().StringP("format", "f", string(report.FormatPDF), "Report format: pdf, xlsx or txt")
	resultsExportCmd.Flags().String("dir", ".", "Output directory")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
	resultsCmd.AddCommand(resultsExportCmd)
}
