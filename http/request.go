package http

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseRequest turns a complete request block into a Request. Lines are
// classified in order: a line containing "HTTP" is the request line, a line
// containing ':' is a header, an empty line is skipped and anything else is
// the body. Only ErrMalformedRequestLine is ever returned, and the Request
// parsed so far is returned with it.
func ParseRequest(raw string) (Request, error) {
	req := Request{
		Version: Version1_1,
		Headers: Headers{},
	}

	var parseErr error
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")

		switch {
		case strings.Contains(line, requestLineMarker):
			if err := req.parseRequestLine(line); err != nil && parseErr == nil {
				parseErr = err
			}
		case strings.Contains(line, ":"):
			// Values keep their leading space.
			name, value, _ := strings.Cut(line, ":")
			req.Headers[name] = value
		case line == "":
		default:
			req.Body = line
		}
	}

	return req, parseErr
}

func (req *Request) parseRequestLine(line string) error {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	req.Method = ParseMethod(parts[0])
	req.Resource = Resource{Path: parts[1]}
	req.Version = ParseVersion(parts[2])
	return nil
}

// ReadRequest reads one request block from br: the request line and headers
// up to the first blank line, followed by Content-Length bytes of body when
// that header is present. Every byte read, stray leading line breaks
// included, counts against MaxRequestSize.
func ReadRequest(br *bufio.Reader) (string, error) {
	var block strings.Builder
	consumed := 0

	for {
		line, err := readLine(br, MaxRequestSize-consumed)
		consumed += len(line)
		if err != nil {
			if errors.Is(err, io.EOF) && block.Len()+len(line) > 0 {
				block.WriteString(line)
				return block.String(), nil
			}
			return "", err
		}

		if strings.TrimRight(line, "\r\n") == "" {
			if block.Len() == 0 {
				// Stray line breaks before the request line.
				continue
			}
			block.WriteString(line)
			break
		}
		block.WriteString(line)
	}

	contentLength, err := headContentLength(block.String())
	if err != nil {
		return "", err
	}

	if contentLength > 0 {
		if consumed+contentLength > MaxRequestSize {
			return "", ErrRequestTooLarge
		}

		body := make([]byte, contentLength)
		if _, err := io.ReadFull(br, body); err != nil {
			return "", fmt.Errorf("http: body read error: %w", err)
		}
		block.Write(body)
	}

	return block.String(), nil
}

// headContentLength classifies the head lines the way ParseRequest does and
// returns the declared body size. A missing or unparsable value means no body.
func headContentLength(head string) (int, error) {
	req, _ := ParseRequest(head)

	value, found := req.Headers.Value(headerContentLength)
	if !found {
		return 0, nil
	}

	n, err := atoi(value)
	if errors.Is(err, errNumberTooLarge) {
		return 0, ErrRequestTooLarge
	}
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// readLine reads up to and including '\n', failing once more than limit bytes
// have been consumed.
func readLine(br *bufio.Reader, limit int) (string, error) {
	var line []byte
	for {
		fragment, err := br.ReadSlice('\n')
		if len(line)+len(fragment) > limit {
			return "", ErrRequestTooLarge
		}
		line = append(line, fragment...)

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return string(line), err
	}
}
