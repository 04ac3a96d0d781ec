package runner

import (
	"fmt"

	"github.com/julianshen/codexplain/internal/output"
)

// ExitError is returned when headless mode should exit with a non-zero code.
// Using a typed error instead of os.Exit ensures deferred cleanup runs.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns 1 when the run recorded an error, 0 otherwise.
func ExitCode(result *output.RunResult) int {
	if result == nil || result.Error != "" {
		return 1
	}
	return 0
}
