package sh

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	logger "gbm/internal/log"
)

type DirectoryPath string

// CommandError reports a process that ran but exited non-zero.
type CommandError struct {
	CommandLine string
	ExitCode    int
	Output      string
	Err         error
}

func (e *CommandError) Error() string {
	return e.CommandLine + ": " + e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecuteCommand runs name with args directly (no shell) in cwd, inheriting the environment, and
// returns the trimmed combined output. An empty cwd runs in the current directory.
func ExecuteCommand(ctx context.Context, cwd DirectoryPath, name string, args ...string) (string, error) {
	commandLine := shellquote.Join(append([]string{name}, args...)...)
	logger.Log.Debugf("Executing %s in %s", commandLine, string(cwd))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = string(cwd)
	cmd.Env = os.Environ()
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		cmdErr := &CommandError{CommandLine: commandLine, ExitCode: -1, Output: output, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return output, cmdErr
	}
	return output, nil
}
