package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/extract"
	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/questionbank"
	"github.com/abhisek/studybuddy/internal/questiongen"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <notes-file>",
	Short: "Generate questions from a notes file and save them as a question bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		mode, _ := cmd.Flags().GetString("mode")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")

		if _, err := questionbank.FormatOf(out); err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
		ctx := cmd.Context()

		notes, err := extract.File(args[0])
		if err != nil {
			return err
		}

		var eventRepo store.EventRepo
		if dbPath, err := resolveDBPath(cfg); err == nil {
			if st, err := store.Open(dbPath); err == nil {
				defer st.Close()
				eventRepo = st.EventRepo()
			}
		}
		gen := newGenerator(cfg, newProvider(ctx, cfg, eventRepo, logger), logger)

		qs, err := gen.Generate(ctx, questiongen.Request{
			Notes:      notes,
			Mode:       mode,
			Difficulty: difficulty,
			Count:      count,
		})
		if err != nil {
			return err
		}

		bank := &questionbank.Bank{Mode: mode, Difficulty: difficulty, Questions: qs}
		if err := questionbank.Save(out, bank); err != nil {
			return err
		}
		fmt.Printf("Saved %d questions to %s\n", len(qs), out)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("out", "o", "bank.yaml", "Output file (.yaml, .json or .xlsx)")
	generateCmd.Flags().StringP("mode", "m", string(quiz.MultipleChoice), "Practice mode: multiple-choice, true-false, fill-blank, short-answer or random")
	generateCmd.Flags().StringP("difficulty", "d", quiz.Beginner, "Difficulty: beginner, intermediate or expert")
	generateCmd.Flags().IntP("count", "n", 5, "Number of questions")
}
