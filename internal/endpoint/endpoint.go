package endpoint

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"hellotcp/internal/errs"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 1080
)

// Endpoint is the host/port pair the listening socket binds to.
type Endpoint struct {
	Host string
	Port uint16
}

func Default() Endpoint {
	return Endpoint{Host: DefaultHost, Port: DefaultPort}
}

// New parses portText as an unsigned 16-bit integer and pairs it with host.
func New(host, portText string) (Endpoint, error) {
	portText = strings.TrimSpace(portText)
	port, err := strconv.ParseUint(portText, 10, 16)
	if err != nil {
		return Endpoint{}, errs.Startup(errs.OpConfigure, fmt.Sprintf("invalid port %q", portText), err)
	}
	return Endpoint{Host: host, Port: uint16(port)}, nil
}

// FromArgs reads host then port from positional arguments.
// Missing arguments fall back to the defaults, extra ones are ignored.
func FromArgs(args []string) (Endpoint, error) {
	host := DefaultHost
	portText := strconv.Itoa(DefaultPort)
	if len(args) > 0 {
		host = args[0]
	}
	if len(args) > 1 {
		portText = args[1]
	}
	return New(host, portText)
}

// FromReader reads a single line from r and appends it to the default host
// as the port, e.g. "8080\n" becomes 127.0.0.1:8080.
func FromReader(r io.Reader) (Endpoint, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Endpoint{}, errs.Startup(errs.OpConfigure, "could not read port", err)
	}

	addr := DefaultHost + ":" + strings.TrimRight(line, "\r\n")
	host, portText, err := net.SplitHostPort(addr)
	if err != nil {
		return Endpoint{}, errs.Startup(errs.OpConfigure, fmt.Sprintf("invalid address %q", addr), err)
	}
	return New(host, portText)
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}
