package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/asa/foundation/core/error"
)

// Source names for input that does not come from a file
const (
	sourceStdin = "<stdin>"
	sourceExpr  = "<expr>"
)

// input is one source text with the name used in diagnostics
type input struct {
	name string
	text string
}

// readInput returns the text of -e, the named file, or stdin when the
// argument is missing or "-"
func readInput(cmd *cobra.Command, args []string, expr string) (input, error) {
	if expr != "" {
		return input{name: sourceExpr, text: expr}, nil
	}
	if len(args) > 0 && args[0] != "-" {
		return readFile(args[0])
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return input{}, mdwerror.Wrap(err, "failed to read standard input").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.readInput")
	}
	return input{name: sourceStdin, text: string(data)}, nil
}

func readFile(path string) (input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeInvalidInput
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return input{}, mdwerror.Wrap(err, "failed to read input file").
			WithCode(code).
			WithOperation("cmd.readFile").
			WithDetail("path", path)
	}
	return input{name: path, text: string(data)}, nil
}
