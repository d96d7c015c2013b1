package http

import (
	"maps"
	"strings"
)

type Method uint8

const (
	MethodUnrecognized Method = iota
	MethodGet
	MethodPost
)

// ParseMethod maps a request line token to a Method. Unknown tokens become
// MethodUnrecognized.
func ParseMethod(s string) Method {
	switch s {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	default:
		return MethodUnrecognized
	}
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	default:
		return unrecognizedTokenLabel
	}
}

type Version uint8

const (
	VersionUnrecognized Version = iota
	Version1_1
	Version2_0
)

// ParseVersion maps a request line token to a Version. Unknown tokens become
// VersionUnrecognized.
func ParseVersion(s string) Version {
	switch s {
	case protocolHttp11:
		return Version1_1
	case protocolHttp20:
		return Version2_0
	default:
		return VersionUnrecognized
	}
}

func (v Version) String() string {
	switch v {
	case Version1_1:
		return protocolHttp11
	case Version2_0:
		return protocolHttp20
	default:
		return unrecognizedTokenLabel
	}
}

// Resource is the raw request target. It is never decoded or split.
type Resource struct {
	Path string
}

// Headers maps a header name to its value. Names and values are stored as they
// appeared on the wire.
type Headers map[string]string

// Value finds a header ignoring the case of its name and returns the value
// without surrounding whitespace.
func (h Headers) Value(name string) (string, bool) {
	if value, found := h[name]; found {
		return strings.TrimSpace(value), true
	}

	for key, value := range h {
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return strings.TrimSpace(value), true
		}
	}

	return "", false
}

type Request struct {
	Method   Method
	Version  Version
	Resource Resource
	Headers  Headers

	// Body holds the last line that was neither a request line, a header nor
	// blank. Multi-line bodies are not accumulated.
	Body string
}

func (req Request) Equal(other Request) bool {
	return req.Method == other.Method &&
		req.Version == other.Version &&
		req.Resource == other.Resource &&
		req.Body == other.Body &&
		maps.Equal(req.Headers, other.Headers)
}
