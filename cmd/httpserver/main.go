package main

import (
	"context"
	"errors"
	"flag"
	"hellotcp/internal/endpoint"
	"hellotcp/internal/logging"
	"hellotcp/internal/register"
	"hellotcp/internal/router"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Usage:
//
//	httpserver                    127.0.0.1:1080
//	httpserver 0.0.0.0 8080       host and port from the arguments
//	httpserver -register http://lb:80 -weight 2
func main() {
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	lbURL := flag.String("register", "", "load balancer base URL to register with")
	weight := flag.Int("weight", 1, "weight announced to the load balancer")
	advertise := flag.String("advertise", "", "address announced to the load balancer (default http://<host>:<port>)")
	flag.Parse()

	logger := logging.NewZap(*logLevel, nil)
	defer logger.Sync()

	e, err := endpoint.FromArgs(flag.Args())
	if err != nil {
		logger.Fatal("could not configure", zap.Error(err))
	}

	srv := router.NewServer(e, logger)
	lsnr, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatal("could not listen", zap.String("addr", srv.Addr), zap.Error(err))
	}

	go func() {
		if err := srv.Serve(lsnr); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("Server is ready to handle requests", zap.String("addr", lsnr.Addr().String()))

	if *lbURL != "" {
		address := *advertise
		if address == "" {
			address = "http://" + lsnr.Addr().String()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := register.NewClient(*lbURL).Register(ctx, address, *weight); err != nil {
			logger.Error("could not register with load balancer", zap.String("lb", *lbURL), zap.Error(err))
		} else {
			logger.Info("registered with load balancer", zap.String("lb", *lbURL), zap.String("address", address))
		}
		cancel()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.SetKeepAlivesEnabled(false)
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("could not gracefully shutdown the server", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
