package http

import "errors"

const (
	MaxRequestSize         = 2 * 1024 * 1024 // 2MB
	DefaultReadBufferSize  = 4096            // 4kB
	ReaderPoolSize         = 1024            // must be a power of 2
	instrumentationName    = "github.com/freekieb7/httpcore/http"
	defaultContentType     = "text/html"
	headerContentType      = "Content-Type"
	headerContentLength    = "Content-Length"
	protocolHttp11         = "HTTP/1.1"
	protocolHttp20         = "HTTP/2.0"
	requestLineMarker      = "HTTP"
	unrecognizedTokenLabel = "UNRECOGNIZED"
)

var (
	ErrMalformedRequestLine = errors.New("http: malformed request line")
	ErrRequestTooLarge      = errors.New("http: request too large")
	ErrIO                   = errors.New("http: write to transport failed")
	ErrHandlerPanic         = errors.New("http: handler panicked")
	ErrServerClosed         = errors.New("http: server closed")
)
