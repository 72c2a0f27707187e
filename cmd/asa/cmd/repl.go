package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/asa/internal/tui/repl"
)

var replRule string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interaktive Eingabe",
	Long: `Startet eine interaktive Oberfläche, die jede eingegebene Zeile parst
und den Syntaxbaum oder die Fehlermeldung anzeigt.

Befehle in der REPL:
  :rule [name]     Grammatikregel anzeigen oder wählen
  :format [name]   Ausgabeformat (tree, json, yaml, sexpr)
  :tokens          Token-Ausgabe ein/aus
  :history         Letzte Läufe anzeigen (ohne --history nur diese Sitzung)
  :clear           Verlauf leeren
  :quit            Beenden

Tastenkürzel:
  Enter          Parsen
  ↑/↓            Frühere Eingaben
  PgUp/PgDn      Blättern
  Ctrl+L         Verlauf leeren
  Esc/Ctrl+C     Beenden`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVarP(&replRule, "rule", "r", "", "Grammatikregel beim Start")
}

func runREPL(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	return repl.Run(repl.Config{
		Service:  a.service,
		Renderer: a.renderer,
		Format:   a.format,
		Rule:     replRule,
	})
}
