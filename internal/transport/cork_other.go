//go:build !linux

package transport

import "net"

func cork(net.Conn) error { return nil }

func uncork(net.Conn) error { return nil }
