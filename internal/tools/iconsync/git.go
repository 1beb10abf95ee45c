package iconsync

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitRunner runs git subcommands in the workspace.
type GitRunner interface {
	Run(ctx context.Context, args ...string) error
}

// ExecGit runs the git binary found on PATH.
type ExecGit struct {
	// Dir is the working directory; empty means the current directory.
	Dir string
}

// Run executes git with args and folds its combined output into the error.
func (g ExecGit) Run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(output.String())
		if detail == "" {
			return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
		}
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, detail)
	}
	return nil
}
