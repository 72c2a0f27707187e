package main

import (
	"os"

	mdwerror "github.com/msto63/asa/foundation/core/error"

	"github.com/msto63/asa/cmd/asa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(mdwerror.GetCode(err).ExitCode())
	}
}
