package wire

import (
	"errors"
	"net"
	"sync"

	"golang.org/x/sys/unix"

	"wayl.io/wrd/common/util"
)

const (
	initialReadBuf = 4096
	initialOOBFds  = 8
)

// Conn wraps a UNIX domain socket connection and exchanges raw bytes
// and SCM_RIGHTS fds with it, the same recvmsg/sendmsg split the
// session engine needs on both the client-facing and the upstream
// leg of a connection (§4.1, §9).
type Conn struct {
	fd int

	writeMu sync.Mutex
}

// NewConn duplicates the underlying fd of a *net.UnixConn; the
// returned Conn owns the duplicate. rawConn stays open and is still
// the caller's to close.
func NewConn(rawConn *net.UnixConn) (*Conn, error) {
	sysConn, err := rawConn.SyscallConn()
	if err != nil {
		return nil, err
	}
	var fd int
	ctrlErr := sysConn.Control(func(rawFd uintptr) {
		fd, err = unix.Dup(int(rawFd))
	})
	if ctrlErr != nil {
		return nil, ctrlErr
	}
	if err != nil {
		return nil, err
	}
	return &Conn{fd: fd}, nil
}

// Fd returns the underlying file descriptor, for poll/epoll-style
// readiness integration.
func (c *Conn) Fd() int {
	return c.fd
}

// Read performs one recvmsg, peeking first to size the buffer large
// enough for the pending datagram and its ancillary data before
// consuming it — the same two-step MSG_PEEK-then-read dance
// RequestStream uses to avoid MSG_TRUNC/MSG_CTRUNC (§4.1).
func (c *Conn) Read() (data []byte, fds []int, err error) {
	bufLen := initialReadBuf
	oobFds := initialOOBFds

	for {
		buf := make([]byte, bufLen)
		oob := make([]byte, unix.CmsgSpace(oobFds*4))

		n, oobn, flags, _, peekErr := unix.Recvmsg(c.fd, buf, oob, unix.MSG_PEEK)
		if peekErr != nil {
			if errors.Is(peekErr, unix.EAGAIN) {
				return nil, nil, util.ErrWouldBlock
			}
			return nil, nil, peekErr
		}
		if flags&unix.MSG_TRUNC != 0 || n == bufLen {
			bufLen *= 2
			continue
		}
		if flags&unix.MSG_CTRUNC != 0 {
			oobFds *= 2
			continue
		}

		buf = make([]byte, n)
		oob = make([]byte, unix.CmsgSpace(oobFds*4))
		n, oobn, flags, _, err = unix.Recvmsg(c.fd, buf, oob, 0)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) {
				return nil, nil, util.ErrWouldBlock
			}
			return nil, nil, err
		}
		if n == 0 {
			return nil, nil, util.ErrSessionClosed
		}

		fds, err = parseRights(oob[:oobn])
		if err != nil {
			return nil, nil, err
		}
		return buf[:n], fds, nil
	}
}

// Write sends data as a single sendmsg call, attaching fds as
// SCM_RIGHTS ancillary data when present (§9).
func (c *Conn) Write(data []byte, fds []int) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var oob []byte
	if len(fds) > 0 {
		oob = unix.UnixRights(fds...)
	}
	return unix.Sendmsg(c.fd, data, oob, nil, 0)
}

func (c *Conn) Close() error {
	return unix.Close(c.fd)
}

func parseRights(oob []byte) ([]int, error) {
	if len(oob) == 0 {
		return nil, nil
	}
	scms, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, err
	}
	var fds []int
	for _, scm := range scms {
		if scm.Header.Level != unix.SOL_SOCKET || scm.Header.Type != unix.SCM_RIGHTS {
			continue
		}
		rights, err := unix.ParseUnixRights(&scm)
		if err != nil {
			return nil, err
		}
		fds = append(fds, rights...)
	}
	return fds, nil
}
