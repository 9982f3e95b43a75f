package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/msto63/transkriptor/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Listet die letzten Transkripte",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appConfig.HistoryEnabled {
			return fmt.Errorf("history is disabled (history_enabled = false)")
		}

		h, err := store.OpenHistory(appConfig.HistoryPath)
		if err != nil {
			return err
		}
		defer h.Close()

		entries, err := h.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Noch keine Transkripte.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Zeit", "Format", "Quelle", "Vorschau", "Transkript")
		for _, e := range entries {
			t.Row(
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.ResponseFormat,
				e.Source,
				truncate(e.Preview, 48),
				e.TranscriptPath,
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", store.DefaultHistoryLimit, "Anzahl der Einträge")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
