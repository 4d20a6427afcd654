package filesystem

import (
	"errors"
	"fmt"
	"net"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

// recordingCloser appends its name to a shared log when closed.
type recordingCloser struct {
	name string
	log  *[]string
	err  error
}

func (r *recordingCloser) Close() error {
	*r.log = append(*r.log, r.name)
	return r.err
}

func TestSFTPConnection_Close_Order(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	var log []string
	conn := &SFTPConnection{
		sftpCloser: &recordingCloser{name: "sftp", log: &log},
		sshCloser:  &recordingCloser{name: "ssh", log: &log},
	}

	g.Expect(conn.Close()).To(Succeed())
	g.Expect(log).To(Equal([]string{"sftp", "ssh"}))
}

func TestSFTPConnection_Close_Errors(t *testing.T) {
	t.Parallel()

	sftpErr := errors.New("sftp close failed")
	sshErr := errors.New("ssh close failed")

	tests := []struct {
		name    string
		sftpErr error
		sshErr  error
		want    error
	}{
		{name: "both succeed"},
		{name: "sftp fails", sftpErr: sftpErr, want: sftpErr},
		{name: "ssh fails", sshErr: sshErr, want: sshErr},
		{name: "both fail returns first", sftpErr: sftpErr, sshErr: sshErr, want: sftpErr},
		{name: "ssh already closed", sshErr: fmt.Errorf("close: %w", net.ErrClosed)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewWithT(t)

			var log []string
			conn := &SFTPConnection{
				sftpCloser: &recordingCloser{name: "sftp", log: &log, err: tt.sftpErr},
				sshCloser:  &recordingCloser{name: "ssh", log: &log, err: tt.sshErr},
			}

			err := conn.Close()
			if tt.want == nil {
				g.Expect(err).NotTo(HaveOccurred())
			} else {
				g.Expect(err).To(BeIdenticalTo(tt.want))
			}

			g.Expect(log).To(HaveLen(2))
		})
	}
}

func TestSFTPConnection_NilClients(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	conn := &SFTPConnection{}
	g.Expect(conn.Client()).To(BeNil())
	g.Expect(conn.Close()).To(Succeed())
}
