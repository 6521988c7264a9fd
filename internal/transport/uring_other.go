//go:build !linux

package transport

import (
	"errors"
	"net"

	"hellotcp/internal/errs"
)

// Uring is only available on Linux.
type Uring struct{}

func NewUring(uint) (*Uring, error) {
	return nil, errs.Startup(errs.OpOpen, "io_uring is only supported on linux", errors.ErrUnsupported)
}

func (*Uring) Open(net.Conn) (Stream, error) {
	return nil, errs.New(errs.RecoverableIO, errs.OpOpen, "io_uring is only supported on linux", errors.ErrUnsupported)
}

func (*Uring) Close() error { return nil }
