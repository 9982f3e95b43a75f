package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msto63/transkriptor/pkg/core/config"
	"github.com/msto63/transkriptor/pkg/core/logging"
)

var (
	cfgFile string
	envFile string
	verbose bool

	appConfig *config.Config
	logFile   *os.File
)

var rootCmd = &cobra.Command{
	Use:   "transkriptor",
	Short: "Lemonfox Transkriptor - Aufnahme und Transkription",
	Long: `Der Lemonfox Transkriptor nimmt Audio auf oder liest Dateien und URLs
und lässt sie über die Lemonfox-API transkribieren.

Aufnahmen und Transkripte werden lokal gespeichert
(Standard: ~/.lemonfox_transkriptor_gui).

Ohne Unterbefehl startet die interaktive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentPreRunE = setup

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei, TOML oder YAML (default: ~/.lemonfox_transkriptor_gui/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Datei mit Umgebungsvariablen")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// setup loads configuration and the environment and configures logging.
// The TUI logs to a file; every other command logs to stderr.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(envFile); err != nil {
		printError("Umgebungsdatei konnte nicht geladen werden", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	appConfig = cfg

	level := logging.ParseLevel(cfg.LogLevel)
	if verbose {
		level = logging.LevelDebug
	}

	var out io.Writer = os.Stderr
	if cmd == rootCmd || cmd == tuiCmd {
		if f, err := openLogFile(cfg.LogFile); err == nil {
			logFile = f
			out = f
		} else {
			out = io.Discard
		}
	} else if level < logging.LevelWarn && !verbose {
		level = logging.LevelWarn
	}

	logging.Configure(logging.LoggerConfig{
		Level:  level.String(),
		Format: cfg.LogFormat,
		Output: out,
	})
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
