package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Report rendered or all files valid
	ExitInvalidInput = 1 // Matrix failed validation
	ExitError        = 2 // Configuration or runtime error
)

// InvalidInputError indicates that the command ran, but the confusion
// matrix it was given is not acceptable.
type InvalidInputError struct {
	Message string
	Err     error
}

func (e *InvalidInputError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return ExitInvalidInput
	}
	return ExitError
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
