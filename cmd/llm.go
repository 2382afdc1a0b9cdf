package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/questiongen"
	"github.com/abhisek/studybuddy/internal/store"
)

const stamp = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Check the configured model and inspect recorded calls",
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send the probe prompt to the configured model",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p := newProvider(cmd.Context(), cfg, s.EventRepo(), logging.Discard())
		if p == nil {
			return llm.ErrNotConfigured
		}
		reply, err := questiongen.Probe(cmd.Context(), p)
		if err != nil {
			return fmt.Errorf("%s: %w", llm.Describe(err), err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "model: %s\n\n%s\n", p.ModelID(), reply)
		return nil
	},
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		var rows [][]string
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			status := "ok"
			if !e.Success {
				status = "failed"
			}
			rows = append(rows, []string{
				itoa(e.ID),
				e.Timestamp.Local().Format(stamp),
				e.Purpose,
				clip(e.Model, 28),
				itoa(e.InputTokens),
				itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				status,
			})
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No model calls recorded.")
			return nil
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "Status"}, rows)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("event id must be a number, got %q", args[0])
		}

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("load event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no event with id %d", id)
		}

		out := cmd.OutOrStdout()
		fields := [][2]string{
			{"time", e.Timestamp.Local().Format(stamp)},
			{"provider", e.Provider},
			{"model", e.Model},
			{"purpose", e.Purpose},
			{"tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens)},
			{"latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"success", strconv.FormatBool(e.Success)},
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Fprintf(out, "%-9s %s\n", f[0]+":", f[1])
		}
		for _, part := range []struct{ title, body string }{
			{"request", e.RequestBody},
			{"response", e.ResponseBody},
		} {
			body := part.body
			if body == "" {
				body = "(empty)"
			}
			fmt.Fprintf(out, "\n== %s %s\n%s\n", part.title, strings.Repeat("=", 50), body)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		out := cmd.OutOrStdout()

		byPurpose, err := s.EventRepo().LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No model calls recorded.")
			return nil
		}

		var calls, in, outTok int
		var rows [][]string
		for _, u := range byPurpose {
			rows = append(rows, []string{u.Purpose, itoa(u.Calls), itoa(u.InputTokens), itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10)})
			calls += u.Calls
			in += u.InputTokens
			outTok += u.OutputTokens
		}
		printTable(out, []string{"Purpose", "Calls", "In", "Out", "Avg ms"}, rows,
			"total", itoa(calls), itoa(in), itoa(outTok), "")

		byModel, err := s.EventRepo().LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		var total float64
		var unpriced []string
		rows = rows[:0]
		for _, u := range byModel {
			price := "?"
			if c := llm.LookupCost(u.Model); c != nil {
				v := c.Cost(u.InputTokens, u.OutputTokens)
				total += v
				price = usd(v)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			rows = append(rows, []string{clip(u.Model, 32), itoa(u.Calls), itoa(u.InputTokens), itoa(u.OutputTokens), price})
		}
		label := "total"
		if len(unpriced) > 0 {
			label = "total (partial)"
		}
		printTable(out, []string{"Model", "Calls", "In", "Out", "Cost"}, rows, label, "", "", "", usd(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "No pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls for this purpose (question-gen or probe)")

	llmCmd.AddCommand(llmTestCmd, llmListCmd, llmViewCmd, llmStatsCmd)
}
