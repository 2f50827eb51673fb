package main

import "fmt"

const (
	exitCodeUsage       = 2
	exitCodeInterrupted = 130
)

type exitError struct {
	code    int
	message string
	silent  bool
}

func (e exitError) Error() string {
	return e.message
}

func exitSilent(code int) error {
	return exitError{code: code, silent: true}
}

func usageError(format string, args ...any) error {
	return exitError{code: exitCodeUsage, message: fmt.Sprintf(format, args...)}
}
