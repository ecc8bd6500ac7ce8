// Package porcelain classifies the output of `git status --branch
// --porcelain` (porcelain v1) into disjoint per-entry counters and extracts
// the upstream name and ahead/behind counts from the branch header.
//
// Classification depends solely on each entry's two-character XY code,
// never on the path text that follows it, so renamed/copied entries
// ("orig -> new") and quoted paths with escaped tabs, backslashes, or
// newlines never confuse the classifier. The path field is always skipped
// over, never interpreted.
package porcelain

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Counters holds the disjoint per-entry counts (staged, changed, untracked,
// conflicts), plus the header-derived ahead/behind and the initial-commit
// flag.
type Counters struct {
	Staged     int
	Changed    int
	Untracked  int
	Conflicts  int
	Ahead      int
	Behind     int
	Initial    bool
	LocalName  string // branch name as it appears after "## ", "" if absent
	Upstream   string // upstream name, "" if none configured
	UpstreamOK bool   // true once an upstream segment (even [gone]) was seen
	Detached   bool   // header was "## HEAD (no branch)"
}

// conflictCodes is the fixed set of two-letter XY codes that denote a merge
// conflict (§4.4). A conflicting entry contributes only to Conflicts.
var conflictCodes = map[string]bool{
	"DD": true,
	"AU": true,
	"UD": true,
	"UA": true,
	"DU": true,
	"AA": true,
	"UU": true,
}

var (
	// "## branch...upstream" with an optional "[ahead N]", "[behind N]",
	// "[ahead N, behind N]" or "[gone]" suffix.
	headerTracking = regexp.MustCompile(`^## (\S+?)\.\.\.(\S+)(?:\s+\[([^\]]+)\])?$`)
	// "## branch" with no upstream at all.
	headerBare = regexp.MustCompile(`^## (\S+)$`)
	// "## No commits yet on branch": unborn branch, no upstream possible.
	headerInitial = regexp.MustCompile(`^## No commits yet on (\S+)$`)
	// "## HEAD (no branch)": detached HEAD.
	headerDetached = regexp.MustCompile(`^## HEAD \(no branch\)$`)

	aheadRe  = regexp.MustCompile(`ahead (\d+)`)
	behindRe = regexp.MustCompile(`behind (\d+)`)
)

// ErrMalformedHeader is returned when the first line of the porcelain
// transcript does not match any recognised branch-header shape. Per §7
// category 3, this is the one fatal parse error in the whole pipeline.
var ErrMalformedHeader = errors.New("malformed porcelain branch header")

// Parse reads a full `git status --branch --porcelain` transcript and
// returns the resulting Counters.
func Parse(r io.Reader) (*Counters, error) {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 64*1024), 1024*1024)

	c := &Counters{}

	if !scan.Scan() {
		if err := scan.Err(); err != nil {
			return nil, errors.Wrap(err, "read porcelain transcript")
		}
		return nil, errors.Wrap(ErrMalformedHeader, "empty transcript")
	}
	if err := c.parseHeader(scan.Text()); err != nil {
		return nil, err
	}

	for scan.Scan() {
		c.parseEntry(scan.Text())
	}
	if err := scan.Err(); err != nil {
		return nil, errors.Wrap(err, "read porcelain transcript")
	}
	return c, nil
}

func (c *Counters) parseHeader(line string) error {
	switch {
	case headerInitial.MatchString(line):
		m := headerInitial.FindStringSubmatch(line)
		c.LocalName = m[1]
		c.Initial = true
		return nil

	case headerDetached.MatchString(line):
		c.Detached = true
		return nil

	case headerTracking.MatchString(line):
		m := headerTracking.FindStringSubmatch(line)
		c.LocalName = m[1]
		c.Upstream = m[2]
		c.UpstreamOK = true
		if ab := m[3]; ab != "" {
			c.applyAheadBehind(ab)
		}
		return nil

	case headerBare.MatchString(line):
		m := headerBare.FindStringSubmatch(line)
		c.LocalName = m[1]
		return nil

	default:
		return errors.Wrapf(ErrMalformedHeader, "line %q", line)
	}
}

// applyAheadBehind fills Ahead/Behind from the bracketed suffix of a
// tracking header. A bare "[gone]" is authoritative and leaves both at
// zero, matching the tested behaviour of scenario 12 in §8. If a future
// Git version ever emits "[gone]" alongside an ahead/behind tuple in the
// same bracket, "gone" still wins.
func (c *Counters) applyAheadBehind(bracket string) {
	if strings.Contains(bracket, "gone") {
		return
	}
	if m := aheadRe.FindStringSubmatch(bracket); m != nil {
		c.Ahead, _ = strconv.Atoi(m[1])
	}
	if m := behindRe.FindStringSubmatch(bracket); m != nil {
		c.Behind, _ = strconv.Atoi(m[1])
	}
}

// parseEntry classifies one non-header porcelain line. Malformed or
// too-short lines are ignored rather than treated as fatal: only the
// header is load-bearing enough to fail the whole parse.
func (c *Counters) parseEntry(line string) {
	if len(line) < 2 {
		return
	}
	code := line[:2]

	switch code {
	case "??":
		c.Untracked++
		return
	case "!!":
		return
	}

	if conflictCodes[code] {
		c.Conflicts++
		return
	}

	x, y := code[0], code[1]
	if isIndexStatus(x) {
		c.Staged++
	}
	if isWorktreeStatus(y) {
		c.Changed++
	}
}

func isIndexStatus(b byte) bool {
	switch b {
	case 'M', 'A', 'D', 'R', 'C', 'T':
		return true
	}
	return false
}

func isWorktreeStatus(b byte) bool {
	switch b {
	case 'M', 'D', 'T':
		return true
	}
	return false
}
