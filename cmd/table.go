package cmd

import (
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// printTable writes a bordered table. A non-empty footer is rendered as
// the last row.
func printTable(w io.Writer, headers []string, rows [][]string, footer ...string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...)
	if len(footer) > 0 {
		t.Row(footer...)
	}
	fmt.Fprintln(w, t.String())
}

func itoa(n int) string { return strconv.Itoa(n) }

func clip(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

func usd(v float64) string {
	if v < 0.01 {
		return fmt.Sprintf("$%.4f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}
