package filesystem

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Exported variables.
var (
	ErrNoAuthMethods = errors.New("no SSH authentication methods available (tried SSH agent and default keys)")
)

// SFTPConnection holds an active SSH/SFTP connection.
type SFTPConnection struct {
	sftpClient *sftp.Client

	// Closed in this order: the SFTP session, then the SSH transport.
	sftpCloser io.Closer
	sshCloser  io.Closer
}

// Connect establishes an SSH connection to the location's host and opens an
// SFTP session. It authenticates with the SSH agent and the default keys and
// checks the host key against ~/.ssh/known_hosts when that file exists.
func Connect(loc *Location) (*SFTPConnection, error) {
	authMethods := getSSHAuthMethods()
	if len(authMethods) == 0 {
		return nil, ErrNoAuthMethods
	}

	hostKeyCallback, err := hostKeyCallback()
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts: %w", err)
	}

	config := &ssh.ClientConfig{
		User:            loc.User,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
	}

	addr := net.JoinHostPort(loc.Host, strconv.Itoa(loc.Port))

	sshClient, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("SSH connection failed: %w", err)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, fmt.Errorf("SFTP session creation failed: %w", err)
	}

	return &SFTPConnection{
		sftpClient: sftpClient,
		sftpCloser: sftpClient,
		sshCloser:  sshClient,
	}, nil
}

// Client returns the underlying SFTP client.
func (c *SFTPConnection) Client() *sftp.Client {
	return c.sftpClient
}

// Close closes the SFTP session and SSH connection.
func (c *SFTPConnection) Close() error {
	var firstErr error

	if c.sftpCloser != nil {
		if err := c.sftpCloser.Close(); err != nil {
			firstErr = err
		}
	}

	if c.sshCloser != nil {
		if err := c.sshCloser.Close(); err != nil && firstErr == nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}

	return firstErr
}

// getSSHAuthMethods returns SSH authentication methods in priority order:
// 1. SSH agent
// 2. Default SSH keys
func getSSHAuthMethods() []ssh.AuthMethod {
	var authMethods []ssh.AuthMethod

	if agentAuth := trySSHAgent(); agentAuth != nil {
		authMethods = append(authMethods, agentAuth)
	}

	return append(authMethods, tryDefaultSSHKeys()...)
}

// hostKeyCallback verifies against known_hosts, or accepts any key when the
// user has no known_hosts file.
func hostKeyCallback() (ssh.HostKeyCallback, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // No home directory to hold known_hosts
	}

	knownHostsPath := filepath.Join(homeDir, ".ssh", "known_hosts")
	if _, err := os.Stat(knownHostsPath); os.IsNotExist(err) {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // Matches ssh's behaviour without known_hosts
	}

	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", knownHostsPath, err)
	}

	return callback, nil
}

// trySSHAgent attempts to connect to the SSH agent.
func trySSHAgent() ssh.AuthMethod {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil
	}

	agentClient := agent.NewClient(conn)

	return ssh.PublicKeysCallback(agentClient.Signers)
}

// tryDefaultSSHKeys loads unencrypted keys from the default locations.
func tryDefaultSSHKeys() []ssh.AuthMethod {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	sshDir := filepath.Join(homeDir, ".ssh")

	keyFiles := []string{
		filepath.Join(sshDir, "id_ed25519"),
		filepath.Join(sshDir, "id_rsa"),
		filepath.Join(sshDir, "id_ecdsa"),
	}

	var authMethods []ssh.AuthMethod

	for _, keyPath := range keyFiles {
		keyData, err := os.ReadFile(keyPath) // #nosec G304 - fixed key locations
		if err != nil {
			continue
		}

		// Password-protected keys are skipped.
		signer, err := ssh.ParsePrivateKey(keyData)
		if err != nil {
			continue
		}

		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}

	return authMethods
}
