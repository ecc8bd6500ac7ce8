// Package format assembles the fixed-position output line consumed by the
// shell prompt (§4.5 and the EBNF in §6).
package format

import (
	"fmt"
	"strings"

	"github.com/alerighi/zsh-git-prompt/internal/branch"
	"github.com/alerighi/zsh-git-prompt/internal/porcelain"
)

// noUpstream is the literal token substituted when no upstream is known.
const noUpstream = ".."

// Line assembles the single output line from the parsed counters and the
// resolved branch state.
//
//	<branch> <ahead> <behind> <staged> <conflicts> <changed> <untracked>
//	<stashes> <initial_commit_flag> <upstream_or_..> <merge_active>
//	<rebase_progress_or_0>
func Line(c *porcelain.Counters, st *branch.State) string {
	upstream := noUpstream
	if c.UpstreamOK {
		upstream = c.Upstream
	}

	initial := 0
	if c.Initial {
		initial = 1
	}

	merge := 0
	if st.MergeActive() {
		merge = 1
	}

	fields := []string{
		st.Display,
		fmt.Sprint(c.Ahead),
		fmt.Sprint(c.Behind),
		fmt.Sprint(c.Staged),
		fmt.Sprint(c.Conflicts),
		fmt.Sprint(c.Changed),
		fmt.Sprint(c.Untracked),
		fmt.Sprint(st.Stashes),
		fmt.Sprint(initial),
		upstream,
		fmt.Sprint(merge),
		st.RebaseToken(),
	}

	return strings.Join(fields, " ")
}
