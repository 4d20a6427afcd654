package filesystem

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// defaultSSHPort is used when an SFTP URL names no port.
const defaultSSHPort = 22

// Location is a walk root: either a local path or a directory on an SFTP server.
type Location struct {
	IsRemote bool

	// Path is the local path, or the remote path for SFTP locations.
	Path string

	// SFTP only.
	Host string
	Port int
	User string
}

// String renders the location the way it was written.
func (l *Location) String() string {
	if !l.IsRemote {
		return l.Path
	}

	if l.Path == "." {
		return fmt.Sprintf("sftp://%s@%s:%d", l.User, l.Host, l.Port)
	}

	return fmt.Sprintf("sftp://%s@%s:%d/%s", l.User, l.Host, l.Port, l.Path)
}

// ParseLocation parses a walk root, detecting SFTP URLs.
// SFTP URLs have the format: sftp://user@host:port/path/to/dir
// Port is optional (defaults to 22)
// Examples:
//   - sftp://joe@myserver.com/home/joe/data
//   - sftp://joe@myserver.com:2222/backups
//   - /local/path/to/files (local path)
func ParseLocation(location string) (*Location, error) {
	if strings.HasPrefix(location, "sftp://") {
		return parseSFTPURL(location)
	}

	return &Location{Path: location}, nil
}

// parseSFTPURL parses an SFTP URL into its components.
//
//nolint:cyclop // Complexity from SFTP URL validation (scheme, user, host, port, path)
func parseSFTPURL(sftpURL string) (*Location, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.Scheme != "sftp" {
		return nil, fmt.Errorf("expected sftp:// scheme, got %s://", u.Scheme) //nolint:err113 // URL validation with actual scheme
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, fmt.Errorf("SFTP URL must include username (sftp://user@host/path)") //nolint:err113,perfsprint // URL validation with format guidance
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("SFTP URL must include host") //nolint:err113,perfsprint // URL validation error
	}

	port := defaultSSHPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
		if p <= 0 || p > 65535 {
			return nil, fmt.Errorf("port out of range: %d", p) //nolint:err113 // Validation error with actual value
		}
		port = p
	}

	// SFTP path convention:
	//   sftp://user@host/path  → relative to home directory (strip leading /)
	//   sftp://user@host//path → absolute path /path (strip one /)
	//   sftp://user@host       → home directory (.)
	remotePath := u.Path
	switch {
	case remotePath == "" || remotePath == "/":
		remotePath = "."
	case strings.HasPrefix(remotePath, "//"):
		remotePath = remotePath[1:]
	default:
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &Location{
		IsRemote: true,
		Path:     remotePath,
		Host:     host,
		Port:     port,
		User:     u.User.Username(),
	}, nil
}
