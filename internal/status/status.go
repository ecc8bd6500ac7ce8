// Package status wires GitRootLocator, GitInvoker, BranchResolver,
// PorcelainParser and Formatter together into a single control flow:
// locate the repository, obtain a porcelain transcript (from stdin or from
// Git), parse the transcript, resolve branch/operation state, and format
// the result.
package status

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/alerighi/zsh-git-prompt/internal/branch"
	"github.com/alerighi/zsh-git-prompt/internal/format"
	"github.com/alerighi/zsh-git-prompt/internal/gitexec"
	"github.com/alerighi/zsh-git-prompt/internal/porcelain"
	"github.com/alerighi/zsh-git-prompt/internal/repo"
)

// Run produces the single output line for dir, or the empty string if dir
// is not inside a Git repository and no stdin transcript was supplied.
//
// piped reports whether the caller determined stdin is not a terminal, in
// which case readStdin supplies the porcelain transcript instead of Git
// being invoked directly. The caller (cmd/gitprompt) makes that
// determination since it's an os.Stdin property, not something this
// package should reach past its inputs for.
func Run(dir string, piped bool, readStdin func() (string, error)) (string, error) {
	ctx, locateErr := repo.Locate(dir)

	if locateErr != nil && !piped {
		// §2: no repository discoverable and no stdin transcript supplied.
		return "", nil
	}

	var transcript string
	var inv *gitexec.Invoker
	if locateErr == nil {
		inv = gitexec.New(ctx.WorkingTreeRoot)
	}

	switch {
	case piped:
		t, err := readStdin()
		if err != nil {
			return "", errors.Wrap(err, "read stdin porcelain transcript")
		}
		transcript = t
	default:
		t, err := inv.Run("status", "--branch", "--porcelain")
		if err != nil {
			return "", errors.Wrap(err, "run git status")
		}
		transcript = t
	}

	counters, err := porcelain.Parse(strings.NewReader(transcript))
	if err != nil {
		return "", errors.Wrap(err, "parse porcelain transcript")
	}

	var metaDir string
	if locateErr == nil {
		metaDir = ctx.MetaDir
	}

	st := branch.Resolve(inv, metaDir, counters)

	return format.Line(counters, st), nil
}
