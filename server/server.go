package server

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/shravanasati/assetserver/internal/config"
	"github.com/shravanasati/assetserver/middleware"
)

type Server struct {
	opts     ServerOpts
	listener net.Listener
	httpSrv  *http.Server
	closed   atomic.Bool
	done     chan struct{}
	err      error
}

// Close shuts the server down. The listener and every open connection are
// closed immediately; in-flight requests are abandoned.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return ErrServerClosed
	}
	return s.httpSrv.Close()
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Wait blocks until the accept loop exits. It returns nil after Close and the
// accept error otherwise.
func (s *Server) Wait() error {
	<-s.done
	return s.err
}

// Done is closed once the accept loop exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) listen() error {
	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", s.opts.Address, err)
	}
	s.listener = listener
	return nil
}

func (s *Server) serve() {
	defer close(s.done)

	err := s.httpSrv.Serve(s.listener)
	if s.closed.Load() || errors.Is(err, http.ErrServerClosed) {
		return
	}
	log.Println("unable to accept connection: " + err.Error())
	s.err = err
}

func newServer(opts ServerOpts, handler http.Handler) *Server {
	if opts.Recovery == nil {
		opts.Recovery = middleware.DefaultRecovery
	}
	if opts.Address == "" {
		opts.Address = config.Default().Address()
	}
	httpSrv := &http.Server{
		Handler: middleware.Recovery(opts.Recovery)(handler),
	}
	return &Server{
		opts:    opts,
		httpSrv: httpSrv,
		done:    make(chan struct{}),
	}
}

// Serve binds the listening socket and starts accepting connections in the
// background. Bind failures, such as the address already being in use, are
// returned before any connection is accepted.
func Serve(opts ServerOpts, handler http.Handler) (*Server, error) {
	s := newServer(opts, handler)
	if err := s.listen(); err != nil {
		return nil, err
	}

	go s.serve()
	return s, nil
}
