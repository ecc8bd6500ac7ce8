// Package gitexec runs Git subcommands and captures their stdout, or
// substitutes a pre-captured porcelain transcript supplied on stdin.
package gitexec

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Invoker runs git(1) in a fixed working directory.
type Invoker struct {
	Dir string
}

// New returns an Invoker that runs Git in dir.
func New(dir string) *Invoker {
	return &Invoker{Dir: dir}
}

// Run executes `git <args...>` and returns stdout decoded as UTF-8, with
// invalid byte sequences replaced. Stderr is discarded. A non-zero exit or
// launch failure is returned as an error; callers that treat the command as
// optional should downgrade that error to a zero value themselves.
func (inv *Invoker) Run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = inv.Dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "run git %s", strings.Join(args, " "))
	}
	return toValidUTF8(out.String()), nil
}

// Optional runs args and swallows any error, returning the empty string
// instead. This matches §4.2's "non-zero exit is not fatal for optional
// probes" and §7 category 2 of the error handling design.
func (inv *Invoker) Optional(args ...string) string {
	out, err := inv.Run(args...)
	if err != nil {
		return ""
	}
	return out
}

// StdinIsPiped reports whether fd 0 is not a terminal, meaning the caller
// should read a porcelain transcript from it instead of invoking `git
// status` directly.
func StdinIsPiped() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadStdin reads the entire porcelain transcript from stdin.
func ReadStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "read porcelain transcript from stdin")
	}
	return toValidUTF8(string(data)), nil
}

func toValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}
