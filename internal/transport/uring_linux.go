//go:build linux

package transport

import (
	"net"
	"os"

	"github.com/iceber/iouring-go"
	"golang.org/x/sys/unix"

	"hellotcp/internal/errs"
)

// Uring submits connection reads and writes through an io_uring instance.
// Connections are still accepted by the net package; each one is handed to
// the ring as a duplicated, blocking descriptor.
type Uring struct {
	iour *iouring.IOURing
}

// NewUring creates a ring with the given queue depth.
func NewUring(entries uint) (*Uring, error) {
	iour, err := iouring.New(entries)
	if err != nil {
		return nil, errs.Startup(errs.OpOpen, "failed to initialize io_uring", err)
	}
	return &Uring{iour: iour}, nil
}

func (u *Uring) Open(conn net.Conn) (Stream, error) {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return nil, errs.New(errs.RecoverableIO, errs.OpOpen, "io_uring needs a TCP connection", nil)
	}

	f, err := tc.File()
	if err != nil {
		return nil, errs.New(errs.RecoverableIO, errs.OpOpen, "failed to duplicate socket", err)
	}
	fd := int(f.Fd())
	if err := unix.SetNonblock(fd, false); err != nil {
		f.Close()
		return nil, errs.New(errs.RecoverableIO, errs.OpOpen, "failed to set blocking mode", err)
	}

	return &uringStream{iour: u.iour, file: f, fd: fd, conn: conn}, nil
}

func (u *Uring) Close() error {
	return u.iour.Close()
}

type uringStream struct {
	iour   *iouring.IOURing
	file   *os.File
	fd     int
	conn   net.Conn
	closed bool
}

func (s *uringStream) Read(buf []byte) (int, error) {
	ch := make(chan iouring.Result, 1)
	if _, err := s.iour.SubmitRequest(iouring.Recv(s.fd, buf, 0), ch); err != nil {
		return 0, errs.New(errs.RecoverableIO, errs.OpRead, "failed to submit read request", err)
	}

	result := <-ch
	n, err := result.ReturnInt()
	if err != nil {
		return 0, classify(errs.OpRead, err)
	}
	return n, nil
}

func (s *uringStream) Write(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		ch := make(chan iouring.Result, 1)
		if _, err := s.iour.SubmitRequest(iouring.Send(s.fd, p[total:], 0), ch); err != nil {
			return total, errs.New(errs.RecoverableIO, errs.OpWrite, "failed to submit write request", err)
		}

		result := <-ch
		n, err := result.ReturnInt()
		if err != nil {
			return total, classify(errs.OpWrite, err)
		}
		if n <= 0 {
			return total, errs.New(errs.RecoverableIO, errs.OpWrite, "connection closed during write", nil)
		}
		total += n
	}
	return total, nil
}

// Flush is a no-op: a completed send has already reached the socket.
func (s *uringStream) Flush() error {
	return nil
}

func (s *uringStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	ferr := s.file.Close()
	cerr := s.conn.Close()
	if ferr != nil {
		return errs.New(errs.RecoverableIO, errs.OpClose, "", ferr)
	}
	if cerr != nil {
		return errs.New(errs.RecoverableIO, errs.OpClose, "", cerr)
	}
	return nil
}
