package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/transkriptor/internal/audio/portaudio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Listet die verfügbaren Audio-Eingabegeräte",
	Long: `Listet die Audio-Eingabegeräte. Der Name kann als audio_device
in der Config-Datei eingetragen werden; leer bedeutet Standardgerät.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := portaudio.ListInputDevices()
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Keine Eingabegeräte gefunden.")
			return nil
		}
		for _, d := range devices {
			marker := " "
			if d.IsDefault {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d Kanäle, %.0f Hz)\n", marker, d.Name, d.MaxInputChannels, d.DefaultSampleRate)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
