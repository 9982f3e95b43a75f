package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/transkriptor/internal/jsonutil"
	"github.com/msto63/transkriptor/internal/settings"
)

var showToken bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Zeigt und ändert die gespeicherten Einstellungen",
	Long: `Zeigt und ändert die Einstellungen für die Transkription
(API-Token, Endpunkt, Antwortformat, Verzeichnisse, Audioformat).

Verfügbare Schlüssel:
  ` + strings.Join(settings.Keys(), "\n  "),
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Zeigt die aktuellen Einstellungen",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := settings.NewStore(appConfig.SettingsPath).Load()
		if !showToken {
			s = s.Redacted()
		}
		data, err := jsonutil.MarshalIndentASCII(s)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <schlüssel> <wert>",
	Short: "Setzt einen Wert und speichert die Einstellungen",
	Example: `  transkriptor settings set api_token sk-...
  transkriptor settings set response_format verbose_json
  transkriptor settings set speaker_labels true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := settings.NewStore(appConfig.SettingsPath)
		s := st.Load()

		if err := s.Set(args[0], args[1]); err != nil {
			return err
		}
		if !s.VerboseJSON() {
			// speaker labels and word timestamps need verbose_json
			s.SpeakerLabels = false
			s.WordTimestamps = false
		}
		if err := s.Validate(); err != nil {
			return err
		}
		if err := st.Save(s); err != nil {
			return err
		}

		value, _ := s.Redacted().Get(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Zeigt den Pfad der Einstellungsdatei",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), settings.NewStore(appConfig.SettingsPath).Path())
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsPathCmd)

	settingsShowCmd.Flags().BoolVar(&showToken, "show-token", false, "API-Token unmaskiert anzeigen")
}
