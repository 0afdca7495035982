package diff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultGitTimeout bounds every git invocation.
const DefaultGitTimeout = 30 * time.Second

// Git runs git subcommands and returns their standard output.
type Git interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecGit runs the git binary found on PATH.
type ExecGit struct {
	// Dir is the working directory; empty means the current directory.
	Dir     string
	Timeout time.Duration
}

// Run executes git with args.
func (g *ExecGit) Run(ctx context.Context, args ...string) ([]byte, error) {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("git %s: timeout after %v", args[0], timeout)
		}
		return nil, fmt.Errorf("git %s: %w: %s", args[0], err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}
