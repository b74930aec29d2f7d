package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pior/dict/protocol"
)

func main() {
	app := newDictApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.Name, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, protocol.ErrInvalidDatabase), errors.Is(err, protocol.ErrInvalidStrategy):
		return ExitCodeInvalidName
	case errors.Is(err, ErrUsage):
		return ExitCodeUsage
	default:
		return ExitCodeFailure
	}
}
