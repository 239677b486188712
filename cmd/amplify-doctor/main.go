// Package main is the entry point for the amplify-doctor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/saga95/amplify-doctor/cmd/amplify-doctor/commands"
	"github.com/saga95/amplify-doctor/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		os.Exit(errors.ExitSuccess)
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(errors.ExitUser)
}
