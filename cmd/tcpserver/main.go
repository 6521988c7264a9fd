package main

import (
	"flag"
	"hellotcp/internal/endpoint"
	"hellotcp/internal/logging"
	"hellotcp/internal/server"
	"hellotcp/internal/transport"
	"os"
	"os/signal"
	"syscall"
)

// Usage:
//
//	tcpserver                     127.0.0.1:1080
//	tcpserver 0.0.0.0 8080        host and port from the arguments
//	echo 8080 | tcpserver -stdin  127.0.0.1 and the port from stdin
func main() {
	useStdin := flag.Bool("stdin", false, "read the port as one line from standard input")
	strict := flag.Bool("strict", false, "treat accept, read and write errors as fatal")
	useUring := flag.Bool("uring", false, "do connection I/O through io_uring (linux only)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.New(*logLevel, os.Stdout)

	var (
		e   endpoint.Endpoint
		err error
	)
	if *useStdin {
		e, err = endpoint.FromReader(os.Stdin)
	} else {
		e, err = endpoint.FromArgs(flag.Args())
	}
	if err != nil {
		logger.Fatalf("could not configure: %s", err)
	}

	policy := server.Defensive
	if *strict {
		policy = server.Strict
	}

	var tr transport.Transport = transport.NewTCP()
	if *useUring {
		u, err := transport.NewUring(32)
		if err != nil {
			logger.Fatalf("could not start io_uring: %s", err)
		}
		tr = u
	}
	defer tr.Close()

	srv, err := server.Listen(server.Config{
		Endpoint:  e,
		Policy:    policy,
		Transport: tr,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatalf("could not listen: %s", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Server is shutting down")
		srv.Close()
	}()

	if err := srv.Serve(); err != nil {
		logger.Fatalf("server error: %s", err)
	}
}
