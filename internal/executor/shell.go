// Package executor runs external commands with captured output.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Shell runs commands through "sh -c".
type Shell struct {
	dir string
}

// NewShell creates a shell runner. An empty dir means the current working
// directory of the process.
func NewShell(dir string) *Shell {
	return &Shell{dir: dir}
}

// Run executes command and returns its stdout and stderr separately.
// Output is returned even when the command fails.
func (s *Shell) Run(ctx context.Context, command string) (string, string, error) {
	if command == "" {
		return "", "", fmt.Errorf("empty command")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = s.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// LookPath locates an executable in PATH.
func LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return p, nil
}
