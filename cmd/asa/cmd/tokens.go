package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/msto63/asa/internal/service"
)

var tokensExpr string

var tokensCmd = &cobra.Command{
	Use:   "tokens [datei]",
	Short: "Token-Strom anzeigen",
	Long: `Zerlegt den Quelltext in Tokens und gibt je Token Position, Art und
Lexem aus. Ohne Datei wird von stdin gelesen.

Beispiele:
  asa tokens main.asa
  asa tokens -e 'fn a(){return 1;}'
  cat main.asa | asa tokens`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensExpr, "expr", "e", "", "Quelltext direkt angeben")
}

func runTokens(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := readInput(cmd, args, tokensExpr)
	if err != nil {
		return err
	}

	result, err := a.service.Tokenize(context.Background(), service.Request{Source: in.name, Input: in.text})
	if err != nil {
		a.renderer.Error(cmd.ErrOrStderr(), err, in.text, in.name)
		return reported(err)
	}
	return a.renderer.Tokens(cmd.OutOrStdout(), result.Tokens)
}
