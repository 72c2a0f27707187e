package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/asa/foundation/core/error"

	"github.com/msto63/asa/pkg/core/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Konfiguration anlegen und anzeigen",
	Long: `Verwaltet die Konfiguration von asa.

Suchreihenfolge ohne --config:
  $ASA_CONFIG
  ./asa.toml, ./asa.yaml
  ~/.config/asa/config.toml

Jeder Schlüssel kann per Umgebungsvariable überschrieben werden,
z.B. ASA_PARSER_MAX_DEPTH=64 oder ASA_OUTPUT_FORMAT=json.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [pfad]",
	Short: "Default-Konfiguration schreiben",
	Long: `Schreibt die Default-Konfiguration als TOML-Datei.
Ohne Pfad wird ~/.config/asa/config.toml verwendet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Wirksame Konfiguration anzeigen (TOML oder mit --format yaml)",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Pfad der geladenen Konfigurationsdatei anzeigen",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Vorhandene Datei überschreiben")
}

func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", mdwerror.Wrap(err, "failed to determine config directory").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("cmd.defaultConfigPath")
	}
	return filepath.Join(dir, "asa", "config.toml"), nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return err
		}
	}

	if err := config.WriteDefault(path, configForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Konfiguration geschrieben: %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if strings.EqualFold(outputFormat, "yaml") {
		return cfg.WriteYAML(cmd.OutOrStdout())
	}
	return cfg.WriteTOML(cmd.OutOrStdout())
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Source() == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Keine Konfigurationsdatei gefunden, es gelten die Defaults")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfg.Source())
	return nil
}
