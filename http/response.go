package http

import (
	"fmt"
	"io"
)

type Response struct {
	Version    string
	StatusCode uint16
	StatusText string
	Headers    Headers
	Body       string
}

// NewResponse builds a Response for statusCode. A nil headers value is
// replaced by a single text/html Content-Type; a non-nil one is used as is.
func NewResponse(statusCode uint16, headers Headers, body string) Response {
	if headers == nil {
		headers = Headers{headerContentType: defaultContentType}
	}

	return Response{
		Version:    protocolHttp11,
		StatusCode: statusCode,
		StatusText: StatusText(statusCode),
		Headers:    headers,
		Body:       body,
	}
}

// AppendTo appends the wire form of the response to dst. Header order follows
// map iteration and is not stable between calls.
func (res Response) AppendTo(dst []byte) []byte {
	var num [20]byte

	dst = append(dst, res.Version...)
	dst = append(dst, ' ')
	n := writeIntToBuffer(int(res.StatusCode), num[:])
	dst = append(dst, num[:n]...)
	dst = append(dst, ' ')
	dst = append(dst, res.StatusText...)
	dst = append(dst, "\r\n"...)

	for name, value := range res.Headers {
		dst = append(dst, name...)
		dst = append(dst, ": "...)
		dst = append(dst, value...)
		dst = append(dst, "\r\n"...)
	}

	dst = append(dst, headerContentLength...)
	dst = append(dst, ": "...)
	n = writeIntToBuffer(len(res.Body), num[:])
	dst = append(dst, num[:n]...)
	dst = append(dst, "\r\n\r\n"...)

	return append(dst, res.Body...)
}

func (res Response) String() string {
	return string(res.AppendTo(nil))
}

func (res Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(res.AppendTo(make([]byte, 0, 128+len(res.Body))))
	return int64(n), err
}

// Send writes the response to w in a single write. Failures wrap ErrIO.
func (res Response) Send(w io.Writer) error {
	if _, err := res.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}
