package protocol

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	sharedlogger "github.com/chrisvarga/gimli/internal/shared/logger"
)

const (
	// readBufSize bounds the single read taken from each connection; only
	// the first line of it is ever inspected.
	readBufSize = 1024

	// readTimeout bounds how long a connection may sit without sending its
	// request line.
	readTimeout = 10 * time.Second

	// statusHeader is written unconditionally before the body is computed,
	// so a client always sees a success header even when the body is the
	// error sentinel.
	statusHeader = "HTTP/1.1 200 OK\r\n" +
		"Content-Type: application/json; charset=utf-8\r\n" +
		"\r\n"
)

// Server accepts transport connections and answers one request per
// connection. Each accepted connection gets its own goroutine; a weighted
// semaphore caps how many run at once, back-pressuring the accept loop when
// the cap is reached.
type Server struct {
	logger sharedlogger.Logger
	router *Router
	addr   string
	sem    *semaphore.Weighted

	mu       sync.Mutex
	listener net.Listener

	wg sync.WaitGroup
}

// NewServer creates a protocol server for addr with at most maxConns
// concurrent connections.
func NewServer(logger sharedlogger.Logger, router *Router, addr string, maxConns int64) *Server {
	return &Server{
		logger: logger,
		router: router,
		addr:   addr,
		sem:    semaphore.NewWeighted(maxConns),
	}
}

// Start binds the listener and serves until Shutdown closes it. A bind
// failure is returned to the caller; the service has no purpose without its
// listening socket.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.logger.Error("Failed to bind protocol listener", "addr", s.addr, "err", err)
		return err
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("Protocol server listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Warn("Accept failed", "err", err)
			continue
		}

		if err := s.sem.Acquire(context.Background(), 1); err != nil {
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.sem.Release(1)
			s.handle(conn)
		}()
	}
}

// Shutdown stops accepting and waits for in-flight connections, honoring the
// caller's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	if ln != nil {
		ln.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		s.logger.Info("Protocol server shutdown complete")
		return nil
	}
}

// Addr returns the bound listener address, or nil before Start has bound it.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// handle serves one connection: a single bounded read, the fixed success
// header, then the routed body. A peer that sends nothing gets no response.
// Any write failure aborts the connection without retry.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))

	buf := make([]byte, readBufSize)
	n, _ := conn.Read(buf)
	if n == 0 {
		return
	}

	line := requestLine(buf[:n])
	s.logger.Debug("Request", "line", line, "remote", conn.RemoteAddr().String())

	if _, err := conn.Write([]byte(statusHeader)); err != nil {
		return
	}
	if _, err := conn.Write(s.router.Dispatch(line)); err != nil {
		return
	}
}

// requestLine extracts the first line of the read buffer, newline-trimmed.
func requestLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(string(b), "\r")
}
