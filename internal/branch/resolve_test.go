package branch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alerighi/zsh-git-prompt/internal/porcelain"
	"github.com/stretchr/testify/require"
)

func TestDetectOperationNone(t *testing.T) {
	dir := t.TempDir()
	op, done, total := detectOperation(dir)
	require.Equal(t, OperationNone, op)
	require.Zero(t, done)
	require.Zero(t, total)
}

func TestDetectOperationMerge(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MERGE_HEAD"), []byte("deadbeef\n"), 0o644))

	op, _, _ := detectOperation(dir)
	require.Equal(t, OperationMerge, op)
}

func TestDetectOperationRebaseMerge(t *testing.T) {
	dir := t.TempDir()
	rb := filepath.Join(dir, "rebase-merge")
	require.NoError(t, os.Mkdir(rb, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(rb, "msgnum"), []byte("1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(rb, "end"), []byte("2\n"), 0o644))

	op, done, total := detectOperation(dir)
	require.Equal(t, OperationRebase, op)
	require.Equal(t, 1, done)
	require.Equal(t, 2, total)
}

func TestDetectOperationRebaseApply(t *testing.T) {
	dir := t.TempDir()
	rb := filepath.Join(dir, "rebase-apply")
	require.NoError(t, os.Mkdir(rb, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(rb, "next"), []byte("3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(rb, "last"), []byte("5\n"), 0o644))

	op, done, total := detectOperation(dir)
	require.Equal(t, OperationRebase, op)
	require.Equal(t, 3, done)
	require.Equal(t, 5, total)
}

func TestCountStashesFromLogFile(t *testing.T) {
	dir := t.TempDir()
	logs := filepath.Join(dir, "logs", "refs")
	require.NoError(t, os.MkdirAll(logs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(logs, "stash"),
		[]byte("line one\nline two\n"), 0o644))

	require.Equal(t, 2, countStashes(nil, dir))
}

func TestCountStashesAbsentLogFile(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, 0, countStashes(nil, dir))
}

func TestResolveUnbornBranch(t *testing.T) {
	c := &porcelain.Counters{LocalName: "master", Initial: true}
	st := Resolve(nil, t.TempDir(), c)
	require.Equal(t, "master", st.Display)
	require.Equal(t, OperationNone, st.Op)
}

func TestResolveOnBranch(t *testing.T) {
	c := &porcelain.Counters{LocalName: "dev"}
	st := Resolve(nil, t.TempDir(), c)
	require.Equal(t, "dev", st.Display)
}

func TestRebaseToken(t *testing.T) {
	st := &State{Op: OperationRebase, RebaseDone: 1, RebaseTotal: 2}
	require.Equal(t, "1/2", st.RebaseToken())

	clean := &State{Op: OperationNone}
	require.Equal(t, "0", clean.RebaseToken())
}

func TestMergeActive(t *testing.T) {
	require.True(t, (&State{Op: OperationMerge}).MergeActive())
	require.False(t, (&State{Op: OperationNone}).MergeActive())
}
