package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics per mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.ResultRepo().StatsByMode(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No practice rounds recorded yet.")
			return nil
		}

		var rounds, correct, total int
		rows := make([][]string, 0, len(stats))
		for _, st := range stats {
			rows = append(rows, []string{
				quiz.ModeLabel(st.Mode),
				itoa(st.Rounds),
				fmt.Sprintf("%.0f%%", st.AvgScore),
				fmt.Sprintf("%d%%", st.BestScore),
				fmt.Sprintf("%d/%d", st.CorrectCount, st.Total),
			})
			rounds += st.Rounds
			correct += st.CorrectCount
			total += st.Total
		}
		printTable(cmd.OutOrStdout(), []string{"Mode", "Rounds", "Average", "Best", "Correct"}, rows,
			"total", itoa(rounds), "", "", fmt.Sprintf("%d/%d", correct, total))
		return nil
	},
}
