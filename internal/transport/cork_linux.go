//go:build linux

package transport

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

func cork(conn net.Conn) error {
	return setCork(conn, 1)
}

// uncork clears TCP_CORK, which sends any partial frame immediately.
func uncork(conn net.Conn) error {
	return setCork(conn, 0)
}

func setCork(conn net.Conn, value int) error {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return nil
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return err
	}

	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_CORK, value)
	})
	if err != nil {
		return err
	}
	return sockErr
}
