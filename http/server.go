package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultReadTimeout = 5 * time.Second

// Server reads a single request per connection, routes it and closes the
// connection once the response is written.
type Server struct {
	Name        string
	Router      *Router
	Logger      *slog.Logger
	ReadTimeout time.Duration

	readers  *readerPool
	mu       sync.Mutex
	listener net.Listener
	closed   bool
	conns    sync.WaitGroup
}

func NewServer(name string, router *Router) *Server {
	return &Server{
		Name:        name,
		Router:      router,
		ReadTimeout: DefaultReadTimeout,
		readers:     newReaderPool(),
	}
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	s.logger().Info("listening", "server", s.Name, "addr", listener.Addr().String())
	return s.Serve(listener)
}

// Serve accepts connections until the listener fails or Shutdown is called,
// in which case ErrServerClosed is returned.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return ErrServerClosed
	}
	s.listener = listener
	s.mu.Unlock()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}

			s.logger().Error("accepting connection failed", "error", err)
			time.Sleep(5 * time.Millisecond)
			continue
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return ErrServerClosed
		}
		s.conns.Add(1)
		s.mu.Unlock()

		go func() {
			defer s.conns.Done()
			s.ServeConn(context.Background(), conn)
		}()
	}
}

// ServeConn handles the one request carried by conn and closes it.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	logger := s.logger().With("remote", conn.RemoteAddr().String(), "request_id", uuid.NewString())

	if s.ReadTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			logger.Warn("setting connection deadline failed", "error", err)
		}
	}

	br := s.pool().Get(conn)
	raw, err := ReadRequest(br)
	s.pool().Put(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return
		}

		logger.Warn("request read failed", "error", err)
		if errors.Is(err, ErrRequestTooLarge) {
			s.reject(logger, conn)
		}
		return
	}

	req, err := ParseRequest(raw)
	if err != nil {
		logger.Warn("request parse failed", "error", err)
		s.reject(logger, conn)
		return
	}

	logger.Debug("request received", "method", req.Method.String(), "path", req.Resource.Path)

	if err := s.Router.Route(ctx, &req, conn); err != nil {
		// Send failures are logged by the router.
		if errors.Is(err, ErrIO) {
			return
		}
		logger.Error("handler failed", "method", req.Method.String(), "path", req.Resource.Path, "error", err)
	}
}

func (s *Server) reject(logger *slog.Logger, conn net.Conn) {
	if err := NewResponse(StatusBadRequest, nil, "").Send(conn); err != nil {
		logger.Warn("response not delivered", "status", StatusBadRequest, "error", err)
	}
}

// Shutdown stops accepting connections and waits for in-flight ones to
// finish or for ctx to be done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) pool() *readerPool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readers == nil {
		s.readers = newReaderPool()
	}
	return s.readers
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
