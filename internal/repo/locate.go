// Package repo locates the Git metadata directory for a working tree,
// following the .git-file indirection used by linked worktrees.
package repo

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoRepository is returned by Locate when no .git entry is found between
// dir and the filesystem root.
var ErrNoRepository = errors.New("not a git repository")

// Context holds the filesystem facts discovered about a working tree.
type Context struct {
	// WorkingTreeRoot is the absolute path of the directory containing the
	// .git entry (directory or file).
	WorkingTreeRoot string
	// MetaDir is the absolute path of the effective Git metadata directory.
	// For a linked worktree this lies outside WorkingTreeRoot, under the
	// main repository's worktrees/<name>/ directory.
	MetaDir string
}

// Locate walks upward from dir looking for a .git entry. It returns
// ErrNoRepository if none is found before reaching the filesystem root, or
// if every ancestor directory is unreadable.
func Locate(dir string) (*Context, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(err, "resolve starting directory")
	}

	cur := start
	for {
		gitPath := filepath.Join(cur, ".git")
		info, err := os.Lstat(gitPath)
		switch {
		case err == nil:
			ctx, err := resolve(cur, gitPath, info)
			if err != nil {
				return nil, err
			}
			return ctx, nil
		case os.IsNotExist(err), os.IsPermission(err):
			// fall through to ascend
		default:
			// Any other error (e.g. a dangling symlink) is treated the
			// same as "not here": keep ascending.
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, ErrNoRepository
		}
		cur = parent
	}
}

// resolve turns a found .git entry into a Context, following the gitdir:
// indirection when .git is a file rather than a directory.
func resolve(workingTreeRoot, gitPath string, info os.FileInfo) (*Context, error) {
	if info.IsDir() {
		return &Context{WorkingTreeRoot: workingTreeRoot, MetaDir: gitPath}, nil
	}

	f, err := os.Open(gitPath)
	if err != nil {
		return nil, errors.Wrap(err, "open .git file")
	}
	defer f.Close()

	scan := bufio.NewScanner(f)
	if !scan.Scan() {
		if err := scan.Err(); err != nil {
			return nil, errors.Wrap(err, "read .git file")
		}
		return nil, errors.New(".git file is empty")
	}
	line := strings.TrimSpace(scan.Text())

	const prefix = "gitdir: "
	if !strings.HasPrefix(line, prefix) {
		return nil, errors.Errorf("unrecognised .git file contents: %q", line)
	}
	target := strings.TrimPrefix(line, prefix)

	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(gitPath), target)
	}
	target = filepath.Clean(target)

	return &Context{WorkingTreeRoot: workingTreeRoot, MetaDir: target}, nil
}
