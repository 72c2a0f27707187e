package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/asa/foundation/asa/parser"
	"github.com/msto63/asa/internal/service"
)

var (
	parseExpr  string
	parseRule  string
	parseStats bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [datei]",
	Short: "Syntaxbaum ausgeben",
	Long: `Parst den Quelltext und gibt den Syntaxbaum aus. Ohne --rule muss die
Eingabe ein vollständiges Programm sein; mit --rule wird nur die genannte
Grammatikregel angewendet und der nicht verbrauchte Rest gemeldet.

Regeln:
  ` + strings.Join(parser.Rules(), ", ") + `

Beispiele:
  asa parse main.asa
  asa parse --format json main.asa
  asa parse --rule math_expression -e '1 + 2 - x'
  asa parse --stats main.asa`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "expr", "e", "", "Quelltext direkt angeben")
	parseCmd.Flags().StringVarP(&parseRule, "rule", "r", "", "Nur diese Grammatikregel anwenden")
	parseCmd.Flags().BoolVar(&parseStats, "stats", false, "Knotenstatistik ausgeben")
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := readInput(cmd, args, parseExpr)
	if err != nil {
		return err
	}

	result, err := a.service.Parse(context.Background(), service.Request{
		Source: in.name,
		Input:  in.text,
		Rule:   parseRule,
	})
	if err != nil {
		a.renderer.Error(cmd.ErrOrStderr(), err, in.text, in.name)
		return reported(err)
	}

	out := cmd.OutOrStdout()
	if err := a.renderer.Node(out, result.Node, a.format); err != nil {
		return err
	}
	if result.Rest != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Rest: %q\n", result.Rest)
	}
	if parseStats {
		fmt.Fprintln(out)
		return a.renderer.Stats(out, result.Stats)
	}
	return nil
}
