package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/asa/internal/service"
)

var checkExpr string

var checkCmd = &cobra.Command{
	Use:   "check [datei...]",
	Short: "Dateien prüfen",
	Long: `Prüft, ob der Token-Strom den Quelltext Byte für Byte wiedergibt und
ob der Quelltext ein gültiges Programm ist. Alle Dateien werden geprüft;
der Exit-Code richtet sich nach dem ersten Fehler.

Beispiele:
  asa check main.asa lib.asa
  asa check -e 'fn a(){return 1;}'
  cat main.asa | asa check`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkExpr, "expr", "e", "", "Quelltext direkt angeben")
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var inputs []input
	if checkExpr != "" || len(args) == 0 {
		in, err := readInput(cmd, nil, checkExpr)
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}
	for _, path := range args {
		in, err := readFile(path)
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}

	var first error
	for _, in := range inputs {
		result, err := a.service.Check(context.Background(), service.Request{Source: in.name, Input: in.text})
		if err != nil {
			a.renderer.Error(cmd.ErrOrStderr(), err, in.text, in.name)
			if first == nil {
				first = err
			}
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d Funktionen, %d Tokens)\n", in.name, result.Functions, result.Tokens)
	}
	return reported(first)
}
