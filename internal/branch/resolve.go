// Package branch derives the displayed branch name, detects in-progress
// merge/rebase operations, and counts stash entries, by inspecting the Git
// metadata directory and invoking Git for the pieces that aren't file-based.
package branch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alerighi/zsh-git-prompt/internal/gitexec"
	"github.com/alerighi/zsh-git-prompt/internal/porcelain"
)

// Operation identifies an in-progress multi-step operation.
type Operation int

const (
	// OperationNone means no merge or rebase is in progress.
	OperationNone Operation = iota
	// OperationMerge means MERGE_HEAD exists in the metadata directory.
	OperationMerge
	// OperationRebase means a rebase-merge or rebase-apply directory exists.
	OperationRebase
)

// State is the result of resolving the branch and operation state.
type State struct {
	// Display is the branch name, ":<hash>" for detached HEAD, or the
	// unborn branch name.
	Display string
	// Op is the detected in-progress operation, if any.
	Op Operation
	// RebaseDone and RebaseTotal are only meaningful when Op ==
	// OperationRebase.
	RebaseDone, RebaseTotal int
	// Stashes is the number of stash entries.
	Stashes int
}

// Resolve derives the State from the porcelain header facts (already parsed
// into c) and the repository's metadata directory.
func Resolve(inv *gitexec.Invoker, metaDir string, c *porcelain.Counters) *State {
	st := &State{}

	switch {
	case c.Initial:
		st.Display = c.LocalName
	case c.Detached:
		var hash string
		if inv != nil {
			hash = inv.Optional("rev-parse", "--short", "HEAD")
		}
		st.Display = ":" + strings.TrimSpace(hash)
	default:
		st.Display = c.LocalName
	}

	st.Op, st.RebaseDone, st.RebaseTotal = detectOperation(metaDir)
	st.Stashes = countStashes(inv, metaDir)

	return st
}

// detectOperation inspects metaDir for the markers Git itself uses to track
// an in-progress merge or rebase (§4.3).
func detectOperation(metaDir string) (op Operation, done, total int) {
	if metaDir == "" {
		return OperationNone, 0, 0
	}

	if fileExists(filepath.Join(metaDir, "MERGE_HEAD")) {
		return OperationMerge, 0, 0
	}

	if dirExists(filepath.Join(metaDir, "rebase-merge")) {
		done := readInt(filepath.Join(metaDir, "rebase-merge", "msgnum"))
		total := readInt(filepath.Join(metaDir, "rebase-merge", "end"))
		return OperationRebase, done, total
	}

	if dirExists(filepath.Join(metaDir, "rebase-apply")) {
		done := readInt(filepath.Join(metaDir, "rebase-apply", "next"))
		total := readInt(filepath.Join(metaDir, "rebase-apply", "last"))
		return OperationRebase, done, total
	}

	return OperationNone, 0, 0
}

// countStashes counts non-empty lines of `git stash list`, falling back to
// counting lines in logs/refs/stash directly if the metadata directory is
// known but invoking git is undesired; in practice both paths agree because
// `stash list` reads exactly that file.
func countStashes(inv *gitexec.Invoker, metaDir string) int {
	if inv != nil {
		out, err := inv.Run("stash", "list")
		if err == nil {
			return countNonEmptyLines(out)
		}
	}

	if metaDir == "" {
		return 0
	}

	f, err := os.Open(filepath.Join(metaDir, "logs", "refs", "stash"))
	if err != nil {
		return 0
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return 0
	}
	return countNonEmptyLines(string(data))
}

func countNonEmptyLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// readInt reads the sole integer stored in a rebase bookkeeping file
// (msgnum, end, next, last), returning 0 if the file is absent or
// unparsable. An optional probe per §7 category 2.
func readInt(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return v
}

// RebaseToken renders the done/total pair as the fixed-format token used by
// Formatter, e.g. "1/2".
func (s *State) RebaseToken() string {
	if s.Op != OperationRebase {
		return "0"
	}
	return fmt.Sprintf("%d/%d", s.RebaseDone, s.RebaseTotal)
}

// MergeActive reports the "1"/"0" merge-active bit used by Formatter.
func (s *State) MergeActive() bool {
	return s.Op == OperationMerge
}
