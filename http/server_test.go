package http

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	stdhttp "net/http"
	"testing"
	"time"
)

func newTestServer(handler Handler) *Server {
	router := NewRouter(handler, handler, nil)
	router.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := NewServer("test", router)
	srv.Logger = router.Logger
	return srv
}

var echoPathHandler = HandlerFunc(func(req *Request) (Response, error) {
	return NewResponse(StatusOK, Headers{"Content-Type": "text/plain"}, "hello "+req.Resource.Path), nil
})

// exchange writes raw to a pipe served by srv and returns the parsed reply.
func exchange(t *testing.T, srv *Server, raw string) (*stdhttp.Response, string, error) {
	t.Helper()

	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	done := make(chan struct{})
	go func() {
		srv.ServeConn(context.Background(), serverConn)
		close(done)
	}()
	defer func() { <-done }()

	if _, err := clientConn.Write([]byte(raw)); err != nil {
		return nil, "", err
	}

	resp, err := stdhttp.ReadResponse(bufio.NewReader(clientConn), nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp, string(body), err
}

func TestServeConn(t *testing.T) {
	srv := newTestServer(echoPathHandler)

	resp, body, err := exchange(t, srv, "GET /about HTTP/1.1\r\nHost: localhost\r\n\r\n")
	if err != nil {
		t.Fatal(err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain" {
		t.Errorf("expected text/plain, got %q", ct)
	}
	if body != "hello /about" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestServeConnNotFound(t *testing.T) {
	srv := newTestServer(echoPathHandler)

	resp, body, err := exchange(t, srv, "POST /api/x HTTP/1.1\r\nContent-Length: 2\r\n\r\n{}")
	if err != nil {
		t.Fatal(err)
	}

	if resp.StatusCode != 404 {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	if body != "" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestServeConnMalformedRequestLine(t *testing.T) {
	srv := newTestServer(echoPathHandler)

	resp, _, err := exchange(t, srv, "GET HTTP/1.1\r\nHost: localhost\r\n\r\n")
	if err != nil {
		t.Fatal(err)
	}

	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestServeConnRequestTooLarge(t *testing.T) {
	srv := newTestServer(echoPathHandler)

	resp, _, err := exchange(t, srv, "POST /upload HTTP/1.1\r\nContent-Length: 99999999999\r\n\r\n")
	if err != nil {
		t.Fatal(err)
	}

	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestServeConnHandlerFailure(t *testing.T) {
	srv := newTestServer(HandlerFunc(func(req *Request) (Response, error) {
		return Response{}, errors.New("disk on fire")
	}))

	if _, _, err := exchange(t, srv, "GET / HTTP/1.1\r\n\r\n"); err == nil {
		t.Error("expected the connection to close without a response")
	}
}

func TestServeConnReadTimeout(t *testing.T) {
	srv := newTestServer(echoPathHandler)
	srv.ReadTimeout = 50 * time.Millisecond

	serverConn, clientConn := net.Pipe()
	defer clientConn.Close()

	done := make(chan struct{})
	go func() {
		srv.ServeConn(context.Background(), serverConn)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not closed after the read timeout")
	}
}

func TestServeAndShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	srv := newTestServer(echoPathHandler)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	client := &stdhttp.Client{
		Transport: &stdhttp.Transport{DisableKeepAlives: true},
		Timeout:   2 * time.Second,
	}
	for _, path := range []string{"/", "/api/users"} {
		resp, err := client.Get("http://" + listener.Addr().String() + path)
		if err != nil {
			t.Fatal(err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}

		if resp.StatusCode != 200 || string(body) != "hello "+path {
			t.Errorf("GET %s: got %d %q", path, resp.StatusCode, body)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}

	select {
	case err := <-serveErr:
		if !errors.Is(err, ErrServerClosed) {
			t.Errorf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after shutdown")
	}
}

func BenchmarkServeConn(b *testing.B) {
	srv := newTestServer(echoPathHandler)
	reqStr := []byte("GET / HTTP/1.1\r\nHost: localhost\r\n\r\n")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		serverConn, clientConn := net.Pipe()
		go srv.ServeConn(context.Background(), serverConn)

		if _, err := clientConn.Write(reqStr); err != nil {
			b.Fatalf("write error: %v", err)
		}
		resp, err := stdhttp.ReadResponse(bufio.NewReader(clientConn), nil)
		if err != nil {
			b.Fatalf("read error: %v", err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		clientConn.Close()
	}
}
