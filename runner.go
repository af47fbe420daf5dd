package mdpdf

import (
	"bytes"
	"os/exec"
)

// CommandRunner abstracts command execution so external tool wrappers can
// be tested without real subprocesses.
type CommandRunner interface {
	Run(name string, args ...string) (stdout string, stderr string, err error)
	RunIn(dir string, env []string, stdin []byte, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(name string, args ...string) (string, string, error) {
	return r.RunIn("", nil, nil, name, args...)
}

// RunIn executes a command with an optional working directory, extra
// environment entries, and stdin content. Extra environment entries are
// appended to the inherited environment.
func (r *ExecRunner) RunIn(dir string, env []string, stdin []byte, name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...) // #nosec G204 -- tool paths come from validated options
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(cmd.Environ(), env...)
	}
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
