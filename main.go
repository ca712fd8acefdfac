package main

import (
	"os"

	"github.com/claudeware/plugctl/cmd"
	"github.com/claudeware/plugctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
