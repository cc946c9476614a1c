package git

import (
	"errors"
	"fmt"
	"os/exec"
)

type gitCommandExecutor interface {
	execute(command string, args ...string) ([]byte, error)
}

type realGitExecutor struct {
	dir string
}

func newRealGitExecutor(dir string) *realGitExecutor {
	return &realGitExecutor{dir: dir}
}

func (e *realGitExecutor) execute(command string, args ...string) ([]byte, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = e.dir
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s %v: %w\n%s", command, args, err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("%s %v: %w", command, args, err)
	}
	return output, nil
}
