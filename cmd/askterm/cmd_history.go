package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"askterm/internal/history"
)

var (
	historyLimit   int
	historySession string
	historyJSON    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously submitted answers",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show (0 = all)")
	historyCmd.Flags().StringVar(&historySession, "session", "", "Only show answers for this session id")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print entries as JSON lines")
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(cfg.History.DatabasePath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No history recorded yet.")
		return nil
	}

	store, err := history.Open(cfg.History.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	var entries []history.Entry
	if historySession != "" {
		entries, err = store.BySession(cmd.Context(), historySession)
	} else {
		entries, err = store.Recent(cmd.Context(), historyLimit)
	}
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(out)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching answers.")
		return nil
	}

	fmt.Fprintf(out, "%-16s  %-12s  %-6s  %-40s  %s\n", "TIME", "SESSION", "MODE", "QUESTION", "ANSWER")
	for _, e := range entries {
		fmt.Fprintf(out, "%-16s  %-12s  %-6s  %-40s  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncateStr(e.SessionID, 12),
			e.Mode,
			truncateStr(oneLine(e.Question), 40),
			truncateStr(oneLine(e.Value), 40),
		)
	}
	return nil
}

func oneLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ⏎ ")
}

func truncateStr(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
