package main

import (
	"os"
	"strings"

	"github.com/flarebyte/nodecli/cmd/nodecli/root"
	perrors "github.com/jmgilman/go/errors"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	if err := root.Execute(os.Args[1:]); err != nil {
		// Print a short, single-line error to stderr on failures.
		// Do not print usage or stack traces.
		msg := strings.Join(strings.Fields(err.Error()), " ")
		if msg == "" {
			msg = "error"
		}
		_, _ = os.Stderr.WriteString(msg + "\n")
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if ec, ok := err.(exitCoder); ok {
		if c := ec.ExitCode(); c != 0 {
			return c
		}
	}
	switch perrors.GetCode(err) {
	case perrors.CodeInvalidInput, perrors.CodeInvalidConfig:
		return 2
	case perrors.CodeNotFound:
		return 3
	case perrors.CodeAlreadyExists, perrors.CodeConflict:
		return 4
	case perrors.CodeForbidden:
		return 5
	default:
		return 1
	}
}
