package executor

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/Cyclone1070/shellfs/internal/config"
)

// SSHExecutor runs each command in its own session on a shared SSH client.
// It is safe for concurrent use.
type SSHExecutor struct {
	settings
	client *ssh.Client
	env    map[string]string
}

// NewSSHExecutor wraps an established client. env is requested on every
// session; servers that do not accept it run the command without it.
func NewSSHExecutor(cfg *config.Config, client *ssh.Client, env map[string]string) *SSHExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	if client == nil {
		panic("client is required")
	}
	return &SSHExecutor{settings: settingsFrom(cfg), client: client, env: env}
}

// DialSSH connects to cfg.SSH.Host and returns an executor bound to it.
func DialSSH(ctx context.Context, cfg *config.Config, env map[string]string) (*SSHExecutor, error) {
	clientCfg, err := ClientConfig(cfg.SSH)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(cfg.SSH.Host, strconv.Itoa(cfg.SSH.Port))
	dialer := net.Dialer{Timeout: clientCfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &CommandError{Cmd: "ssh " + addr, Cause: err, Stage: "connect"}
	}

	// The handshake is bounded by the same timeout as the dial, or by ctx
	// when it expires sooner.
	deadline := time.Now().Add(clientCfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return nil, &CommandError{Cmd: "ssh " + addr, Cause: err, Stage: "connect"}
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err == nil {
		err = conn.SetDeadline(time.Time{})
	}
	if err != nil {
		_ = conn.Close()
		if isAuthFailure(err) {
			return nil, &PermissionError{Command: "ssh " + cfg.SSH.User + "@" + addr, Cause: err}
		}
		return nil, &CommandError{Cmd: "ssh " + addr, Cause: err, Stage: "connect"}
	}

	return NewSSHExecutor(cfg, ssh.NewClient(c, chans, reqs), env), nil
}

// ClientConfig builds the SSH client configuration: public key auth from
// KeyFile, password auth from the variable named by PasswordEnv, and host
// key verification against KnownHostsFile (default ~/.ssh/known_hosts).
func ClientConfig(cfg config.SSHConfig) (*ssh.ClientConfig, error) {
	password := ""
	if cfg.PasswordEnv != "" {
		password = os.Getenv(cfg.PasswordEnv)
	}

	var auth []ssh.AuthMethod
	if cfg.KeyFile != "" {
		signer, err := loadSigner(cfg.KeyFile, password)
		if err != nil {
			return nil, err
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if password != "" {
		auth = append(auth, ssh.Password(password))
	}
	if len(auth) == 0 {
		return nil, &SSHConfigError{Field: "key_file", Reason: "no key file or password available"}
	}

	hostKey, err := hostKeyCallback(cfg)
	if err != nil {
		return nil, err
	}

	return &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKey,
		Timeout:         time.Duration(cfg.DialTimeoutSeconds) * time.Second,
	}, nil
}

func loadSigner(path, passphrase string) (ssh.Signer, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, &SSHConfigError{Field: "key_file", Reason: "cannot read key", Cause: err}
	}
	signer, err := ssh.ParsePrivateKey(pem)
	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) && passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(pem, []byte(passphrase))
	}
	if err != nil {
		return nil, &SSHConfigError{Field: "key_file", Reason: "cannot parse key", Cause: err}
	}
	return signer, nil
}

func hostKeyCallback(cfg config.SSHConfig) (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	path := cfg.KnownHostsFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, &SSHConfigError{Field: "known_hosts_file", Reason: "no home directory", Cause: err}
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}
	callback, err := knownhosts.New(path)
	if err != nil {
		return nil, &SSHConfigError{Field: "known_hosts_file", Reason: "cannot load known hosts", Cause: err}
	}
	return callback, nil
}

func isAuthFailure(err error) bool {
	return strings.Contains(err.Error(), "unable to authenticate")
}

// Run executes command in a new session. On timeout the remote process is
// sent SIGINT, then the session is closed after the grace period.
func (e *SSHExecutor) Run(ctx context.Context, command string, timeout time.Duration) (*Result, error) {
	if strings.TrimSpace(command) == "" {
		return nil, &EmptyCommandError{}
	}
	timeout = e.timeout(timeout)

	session, err := e.client.NewSession()
	if err != nil {
		return nil, &CommandError{Cmd: command, Cause: err, Stage: "session"}
	}
	defer session.Close()

	for _, key := range sortedKeys(e.env) {
		// Rejected unless the server's AcceptEnv allows the name.
		_ = session.Setenv(key, e.env[key])
	}

	out := newOutputs(e.maxOutput)
	session.Stdout = out.stdout
	session.Stderr = out.stderr

	if err := session.Start(command); err != nil {
		return nil, &CommandError{Cmd: command, Cause: err, Stage: "start"}
	}

	done := make(chan error, 1)
	go func() {
		done <- session.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var waitErr, execErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		_ = session.Close()
		<-done
		execErr = ctx.Err()
	case <-timer.C:
		_ = session.Signal(ssh.SIGINT)
		select {
		case <-done:
		case <-time.After(e.gracePeriod):
			_ = session.Signal(ssh.SIGKILL)
			_ = session.Close()
			<-done
		}
		execErr = &TimeoutError{Command: command, Duration: timeout}
	}

	if execErr != nil {
		return out.result(-1), execErr
	}

	var exitErr *ssh.ExitError
	switch {
	case waitErr == nil:
		return e.finish(command, out.result(0))
	case errors.As(waitErr, &exitErr):
		return e.finish(command, out.result(exitErr.ExitStatus()))
	default:
		return out.result(-1), &CommandError{Cmd: command, Cause: waitErr, Stage: "execution"}
	}
}

// Close closes the underlying SSH connection.
func (e *SSHExecutor) Close() error {
	return e.client.Close()
}
