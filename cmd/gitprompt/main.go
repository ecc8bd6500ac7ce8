// Command gitprompt inspects the current Git working tree and prints a
// single-line, space-separated summary for consumption by a shell prompt.
//
// It takes no arguments. If stdin is not a terminal, the entire porcelain
// transcript is read from it instead of invoking `git status`. Outside a
// Git repository (and with no stdin transcript), it prints nothing and
// exits zero. It exits non-zero, printing nothing, when the porcelain header
// is malformed, when `git status` or reading stdin fails, or when the
// working directory cannot be determined.
package main

import (
	"fmt"
	"os"

	"github.com/alerighi/zsh-git-prompt/internal/gitexec"
	"github.com/alerighi/zsh-git-prompt/internal/status"
)

func main() {
	wd, err := os.Getwd()
	if err != nil {
		os.Exit(1)
	}

	piped := gitexec.StdinIsPiped()

	line, err := status.Run(wd, piped, gitexec.ReadStdin)
	if err != nil {
		os.Exit(1)
	}

	if line != "" {
		fmt.Println(line)
	}
}
