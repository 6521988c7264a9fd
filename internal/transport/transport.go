package transport

import (
	"errors"
	"io"
	"net"
	"syscall"

	"hellotcp/internal/errs"
)

// Stream is the I/O surface the handler uses for one accepted connection.
type Stream interface {
	// Read performs a single read into buf.
	Read(buf []byte) (int, error)

	// Write sends all of p or returns an error.
	Write(p []byte) (int, error)

	// Flush pushes anything the stream is holding back onto the wire.
	Flush() error

	// Close releases the stream and the connection under it.
	Close() error
}

// Transport turns accepted connections into Streams.
type Transport interface {
	Open(conn net.Conn) (Stream, error)
	Close() error
}

// TCP is the default transport: plain reads and writes on the socket,
// with the response held in the kernel until Flush where the platform allows it.
type TCP struct{}

func NewTCP() *TCP {
	return &TCP{}
}

func (*TCP) Open(conn net.Conn) (Stream, error) {
	if err := cork(conn); err != nil {
		return nil, errs.New(errs.RecoverableIO, errs.OpOpen, "could not cork socket", err)
	}
	return &tcpStream{conn: conn}, nil
}

func (*TCP) Close() error {
	return nil
}

type tcpStream struct {
	conn   net.Conn
	closed bool
}

func (s *tcpStream) Read(buf []byte) (int, error) {
	n, err := s.conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, classify(errs.OpRead, err)
	}
	return n, err
}

func (s *tcpStream) Write(p []byte) (int, error) {
	// net.Conn.Write only returns once all of p is written or it fails
	n, err := s.conn.Write(p)
	if err != nil {
		return n, classify(errs.OpWrite, err)
	}
	return n, nil
}

func (s *tcpStream) Flush() error {
	if err := uncork(s.conn); err != nil {
		return errs.New(errs.FatalIO, errs.OpFlush, "", err)
	}
	return nil
}

func (s *tcpStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.conn.Close(); err != nil {
		return errs.New(errs.RecoverableIO, errs.OpClose, "", err)
	}
	return nil
}

func classify(op errs.Op, err error) error {
	switch {
	case errors.Is(err, syscall.EPIPE), errors.Is(err, syscall.ECONNRESET):
		return errs.New(errs.RecoverableIO, op, "connection closed by peer", err)
	case errors.Is(err, net.ErrClosed):
		return errs.New(errs.RecoverableIO, op, "connection closed", err)
	default:
		return errs.New(errs.RecoverableIO, op, "", err)
	}
}
