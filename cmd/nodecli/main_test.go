package main

import (
	"errors"
	"testing"

	perrors "github.com/jmgilman/go/errors"
)

type codedExit struct{ code int }

func (e codedExit) Error() string { return "exit" }
func (e codedExit) ExitCode() int { return e.code }

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{perrors.New(perrors.CodeInvalidInput, "bad"), 2},
		{perrors.New(perrors.CodeInvalidConfig, "bad"), 2},
		{perrors.New(perrors.CodeNotFound, "missing"), 3},
		{perrors.New(perrors.CodeAlreadyExists, "dup"), 4},
		{perrors.New(perrors.CodeConflict, "dir"), 4},
		{perrors.New(perrors.CodeForbidden, "perm"), 5},
		{perrors.Wrap(perrors.New(perrors.CodeNotFound, "x"), perrors.CodeNotFound, "wrapped"), 3},
		{perrors.New(perrors.CodeTimeout, "slow"), 1},
		{errors.New("plain"), 1},
		{codedExit{7}, 7},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Fatalf("%v: got %d want %d", c.err, got, c.want)
		}
	}
}
