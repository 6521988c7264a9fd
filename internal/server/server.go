package server

import (
	"errors"
	"hellotcp/internal/endpoint"
	"hellotcp/internal/errs"
	"hellotcp/internal/request"
	"hellotcp/internal/response"
	"hellotcp/internal/transport"
	"net"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Policy decides what happens to accept, read and write failures.
// Flush failures always stop the server.
type Policy int

const (
	// Defensive logs the failure and keeps serving.
	Defensive Policy = iota
	// Strict returns the failure from Serve.
	Strict
)

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "defensive"
}

type Config struct {
	Endpoint       endpoint.Endpoint
	Policy         Policy
	ReadBufferSize int
	Transport      transport.Transport
	Logger         *logrus.Logger
}

// Server accepts and services one connection at a time.
type Server struct {
	cfg      Config
	listener net.Listener
	closed   atomic.Bool
	buf      []byte
	response []byte
	log      *logrus.Entry
}

// Listen binds the configured endpoint.
func Listen(cfg Config) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Endpoint.String())
	if err != nil {
		return nil, errs.Startup(errs.OpBind, cfg.Endpoint.String(), err)
	}
	return newServer(cfg, listener), nil
}

func newServer(cfg Config, listener net.Listener) *Server {
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = request.BufferSize
	}
	if cfg.Transport == nil {
		cfg.Transport = transport.NewTCP()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Server{
		cfg:      cfg,
		listener: listener,
		buf:      make([]byte, cfg.ReadBufferSize),
		response: response.Build(),
		log:      cfg.Logger.WithField("policy", cfg.Policy.String()),
	}
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops the accept loop. A connection being serviced is finished first.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.listener.Close()
}

// Serve runs the accept loop. It returns nil after Close, otherwise only
// with an error that must stop the process.
func (s *Server) Serve() error {
	s.log.WithField("addr", s.Addr().String()).Info("Server is ready to handle requests")
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				s.log.Info("Server stopped")
				return nil
			}
			aerr := errs.New(errs.RecoverableIO, errs.OpAccept, "", err)
			if s.cfg.Policy == Strict || errors.Is(err, net.ErrClosed) {
				return escalate(errs.OpAccept, aerr)
			}
			s.log.WithError(err).Error("Error accepting connection")
			continue
		}

		if err := s.handle(conn); err != nil {
			return err
		}
	}
}

// handle services conn to completion. The connection is closed on every path.
func (s *Server) handle(conn net.Conn) error {
	entry := s.log.WithField("remote", conn.RemoteAddr().String())

	stream, err := s.cfg.Transport.Open(conn)
	if err != nil {
		conn.Close()
		return s.applyPolicy(entry, errs.OpOpen, err)
	}
	defer func() {
		if err := stream.Close(); err != nil {
			entry.WithError(err).Warn("Error closing connection")
		}
	}()

	req, err := request.Read(stream, s.buf)
	if err != nil {
		if ferr := s.applyPolicy(entry, errs.OpRead, err); ferr != nil {
			return ferr
		}
	}
	entry.WithFields(logrus.Fields{
		"bytes":   len(req.Raw),
		"request": req.Text,
	}).Info("Request received")

	if _, err := stream.Write(s.response); err != nil {
		// the connection is abandoned either way, Flush is skipped
		return s.applyPolicy(entry, errs.OpWrite, err)
	}

	if err := stream.Flush(); err != nil {
		return escalate(errs.OpFlush, err)
	}

	entry.Debug("Response sent")
	return nil
}

// applyPolicy applies the policy to err: Strict escalates it, Defensive logs it.
func (s *Server) applyPolicy(entry *logrus.Entry, op errs.Op, err error) error {
	if s.cfg.Policy == Strict {
		return escalate(op, err)
	}
	entry.WithError(err).Error("Error handling connection")
	return nil
}

func escalate(op errs.Op, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		c := *e
		c.Kind = errs.FatalIO
		return &c
	}
	return errs.New(errs.FatalIO, op, "", err)
}
