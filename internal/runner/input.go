// internal/runner/input.go
package runner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ResolveRepoURL determines the repository URL from the available sources.
// Priority: flag > first non-blank line of stdinReader.
// stdinReader may be nil if stdin is a TTY (no pipe).
func ResolveRepoURL(flag string, stdinReader io.Reader) (string, error) {
	if url := strings.TrimSpace(flag); url != "" {
		return url, nil
	}

	if stdinReader != nil {
		sc := bufio.NewScanner(stdinReader)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				return line, nil
			}
		}
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
	}

	return "", fmt.Errorf("no repository provided: use --repo or pipe a URL to stdin")
}
