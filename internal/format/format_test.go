package format

import (
	"testing"

	"github.com/alerighi/zsh-git-prompt/internal/branch"
	"github.com/alerighi/zsh-git-prompt/internal/porcelain"
	"github.com/stretchr/testify/require"
)

// These mirror the worked end-to-end scenarios of spec.md §8.
func TestLineScenarios(t *testing.T) {
	tests := []struct {
		name string
		c    *porcelain.Counters
		st   *branch.State
		want string
	}{
		{
			name: "fresh repo no commits",
			c:    &porcelain.Counters{LocalName: "master", Initial: true},
			st:   &branch.State{Display: "master"},
			want: "master 0 0 0 0 0 0 0 1 .. 0 0",
		},
		{
			name: "clean branch no upstream",
			c:    &porcelain.Counters{LocalName: "master"},
			st:   &branch.State{Display: "master"},
			want: "master 0 0 0 0 0 0 0 0 .. 0 0",
		},
		{
			name: "detached head",
			c:    &porcelain.Counters{Detached: true},
			st:   &branch.State{Display: ":abc1234"},
			want: ":abc1234 0 0 0 0 0 0 0 0 .. 0 0",
		},
		{
			name: "upstream with mixed changes and a stash",
			c: &porcelain.Counters{
				LocalName: "master", Upstream: "up/master", UpstreamOK: true,
				Staged: 3, Changed: 1, Untracked: 2,
			},
			st:   &branch.State{Display: "master", Stashes: 1},
			want: "master 0 0 3 0 1 2 1 0 up/master 0 0",
		},
		{
			name: "merge conflict",
			c: &porcelain.Counters{
				LocalName: "master", Upstream: "up/master", UpstreamOK: true,
				Conflicts: 1, Ahead: 1, Behind: 1,
			},
			st:   &branch.State{Display: "master", Op: branch.OperationMerge, Stashes: 1},
			want: "master 1 1 0 1 0 0 1 0 up/master 1 0",
		},
		{
			name: "in-progress merge into dev",
			c:    &porcelain.Counters{LocalName: "dev", Conflicts: 1},
			st:   &branch.State{Display: "dev", Op: branch.OperationMerge, Stashes: 1},
			want: "dev 0 0 0 1 0 0 1 0 .. 1 0",
		},
		{
			name: "rebase step 1 of 2",
			c:    &porcelain.Counters{Detached: true, Conflicts: 1},
			st:   &branch.State{Display: ":abc1234", Op: branch.OperationRebase, RebaseDone: 1, RebaseTotal: 2},
			want: ":abc1234 0 0 0 1 0 0 0 0 .. 0 1/2",
		},
		{
			name: "upstream deleted",
			c:    &porcelain.Counters{LocalName: "dev", Upstream: "up/dev", UpstreamOK: true},
			st:   &branch.State{Display: "dev"},
			want: "dev 0 0 0 0 0 0 0 0 up/dev 0 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Line(tt.c, tt.st))
		})
	}
}
