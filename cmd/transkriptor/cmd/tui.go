package cmd

import (
	"fmt"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/transkriptor/internal/hotkey"
	"github.com/msto63/transkriptor/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Startet die interaktive TUI",
	Long: `Startet die Terminal User Interface (TUI) des Transkriptors.

Bedienung:
  r / Leertaste   - Aufnahme starten/stoppen (Umschaltmodus)
  Hotkey halten   - Aufnahme solange die Tastenkombination gedrückt ist
  f               - Audiodatei transkribieren
  u               - URL transkribieren
  Ctrl+L          - Ausgabe leeren
  q / Ctrl+C      - Beenden

Logs werden in die Logdatei aus der Konfiguration geschrieben.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a := newApp(true, nil)
	defer a.Close()

	s := a.settings.Load()
	opts := tui.Options{
		PollInterval: appConfig.PollInterval.Duration,
		Summary:      fmt.Sprintf("%s • Format: %s", s.APIBase, s.ResponseFormat),
	}

	var program atomic.Pointer[tea.Program]

	listener := hotkey.New(appConfig.Hotkey, a.coord, func(err error) {
		if p := program.Load(); p != nil {
			p.Send(tui.NotifyMsg{Err: err})
		}
	})
	if appConfig.Hotkey.Enabled {
		if err := listener.Start(); err != nil {
			a.logger.Warn("Hotkey unavailable", "error", err)
		} else {
			opts.Shortcut = listener.Shortcut()
		}
	}
	defer listener.Stop()

	p := tea.NewProgram(
		tui.NewModel(a.coord, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	program.Store(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI Fehler: %v\n", err)
		return err
	}

	return nil
}
