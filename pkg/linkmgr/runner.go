package linkmgr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/crypto/ssh"
)

// Runner executes one external command and returns its combined output.
// A nonzero exit status is returned as an error alongside the output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the local host. This is the normal path when
// evelink runs directly on the EVE-NG server.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.Bytes(), fmt.Errorf("%s: %w", name, err)
	}
	return out.Bytes(), nil
}

// SSHRunner runs commands on the EVE-NG server over SSH, for operators
// driving transitions from a workstation. One session is created per call;
// the underlying connection is reused for the whole run.
type SSHRunner struct {
	client *ssh.Client
	host   string
}

// NewSSHRunner dials the host (port 22 unless one is given) with password
// authentication. Host keys are not verified; lab servers are typically
// reachable only on management networks.
func NewSSHRunner(host, user, pass string) (*SSHRunner, error) {
	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(pass),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	addr := host
	if !strings.Contains(addr, ":") {
		addr += ":22"
	}

	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("SSH dial %s: %w", addr, err)
	}
	return &SSHRunner{client: client, host: host}, nil
}

func (r *SSHRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session, err := r.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("SSH session on %s: %w", r.host, err)
	}
	defer session.Close()

	cmd := name + " " + strings.Join(quoteArgs(args), " ")
	out, err := session.CombinedOutput(cmd)
	if err != nil {
		return out, fmt.Errorf("SSH exec on %s: %w", r.host, err)
	}
	return out, nil
}

// Close closes the SSH connection.
func (r *SSHRunner) Close() error {
	return r.client.Close()
}
