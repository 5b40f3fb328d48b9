package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cryptsh/crypt/cmd"
	"github.com/cryptsh/crypt/internal/workflows"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		// Child processes under `crypt exec` report their own exit status;
		// everything else is a plain failure.
		var exitErr *workflows.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintln(os.Stderr, exitErr.Err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
