package http

const (
	StatusOK                  uint16 = 200 // RFC 7231, 6.3.1
	StatusBadRequest          uint16 = 400 // RFC 7231, 6.5.1
	StatusNotFound            uint16 = 404 // RFC 7231, 6.5.4
	StatusInternalServerError uint16 = 500 // RFC 7231, 6.6.1
)

var statusMessages = map[uint16]string{
	StatusOK:                  "OK",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusInternalServerError: "Internal Server Error",
}

// StatusText returns the reason phrase for code. Codes outside the table are
// reported as "Not Found".
func StatusText(code uint16) string {
	if text, found := statusMessages[code]; found {
		return text
	}

	return statusMessages[StatusNotFound]
}
