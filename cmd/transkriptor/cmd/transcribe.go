package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/transkriptor/internal/apperr"
	"github.com/msto63/transkriptor/internal/coordinator"
	"github.com/msto63/transkriptor/internal/settings"
)

var (
	trFormat   string
	trLanguage string
	trPrompt   string
	trPathOnly bool
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <datei|url>",
	Short: "Transkribiert eine Audiodatei oder URL",
	Long: `Transkribiert eine lokale Audiodatei oder eine öffentlich erreichbare URL.

Lokale Dateien werden zuerst in das Audioverzeichnis kopiert. Das Transkript
wird im Textverzeichnis gespeichert und auf der Konsole ausgegeben.

Flags überschreiben die gespeicherten Einstellungen nur für diesen Aufruf.

Beispiele:
  transkriptor transcribe meeting.mp3
  transkriptor transcribe https://example.com/interview.wav --format verbose_json`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().StringVarP(&trFormat, "format", "f", "",
		"Antwortformat (json, text, srt, vtt, verbose_json)")
	transcribeCmd.Flags().StringVarP(&trLanguage, "language", "l", "",
		"Sprache der Aufnahme, z.B. german")
	transcribeCmd.Flags().StringVar(&trPrompt, "prompt", "",
		"Kontext-Prompt für die Transkription")
	transcribeCmd.Flags().BoolVar(&trPathOnly, "saved-path", false,
		"Nur den Pfad des gespeicherten Transkripts ausgeben")
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	if trFormat != "" && !slices.Contains(settings.Formats, trFormat) {
		return apperr.Validation("unknown response format %q (use %s)", trFormat, strings.Join(settings.Formats, ", "))
	}

	a := newApp(false, func(s *settings.Settings) {
		if trFormat != "" {
			s.ResponseFormat = trFormat
		}
		if trLanguage != "" {
			s.Language = trLanguage
		}
		if trPrompt != "" {
			s.Prompt = trPrompt
		}
	})
	defer a.Close()

	source := args[0]
	var err error
	if isURL(source) {
		err = a.coord.SubmitURL(source)
	} else {
		err = a.coord.SubmitFile(source)
	}
	if err != nil {
		return err
	}

	out := waitOutcome(a.coord, appConfig.PollInterval.Duration)
	if !out.Succeeded() {
		return fmt.Errorf("%s", out.Message)
	}

	if trPathOnly {
		fmt.Println(out.SavedPath)
		return nil
	}
	fmt.Println(out.DisplayText)
	fmt.Fprintf(cmd.ErrOrStderr(), "\nGespeichert unter %s (%s)\n", out.SavedPath, out.Duration.Round(time.Millisecond))
	return nil
}

// waitOutcome polls the coordinator at the UI cadence until a job finishes
func waitOutcome(c *coordinator.Coordinator, interval time.Duration) coordinator.Outcome {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if out, ok := c.Poll(); ok {
			return out
		}
		<-ticker.C
	}
}
