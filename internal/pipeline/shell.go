package pipeline

import (
	"bytes"
	"os/exec"
	"strings"
)

// shellResult captures everything the pipeline needs from one invocation
// of the platform shell.
type shellResult struct {
	exitOK bool
	stdout []byte
	stderr []byte
}

// runShell substitutes {file} into command and runs it through the
// platform shell ("sh -c") with the given working directory and
// optional stdin. A non-nil error means the shell itself could not be
// spawned (judgeerr.ShellSpawnFailed territory); a non-success exit is
// reported via the returned result, not an error.
func runShell(command, file, dir string, stdin *string) (shellResult, error) {
	resolved := strings.ReplaceAll(command, "{file}", file)

	cmd := exec.Command("sh", "-c", resolved)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = strings.NewReader(*stdin)
	}

	if err := cmd.Start(); err != nil {
		return shellResult{}, err
	}
	waitErr := cmd.Wait()

	return shellResult{
		exitOK: waitErr == nil,
		stdout: stdout.Bytes(),
		stderr: stderr.Bytes(),
	}, nil
}
