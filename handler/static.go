package handler

import (
	"errors"
	"strings"

	"github.com/freekieb7/httpcore/filesystem"
	"github.com/freekieb7/httpcore/http"
)

type StaticPageHandler struct {
	Public filesystem.Filesystem
}

// Handle serves "/" as index.html, "/health" as health.html and any other
// path as the file of that name below the public directory.
func (h StaticPageHandler) Handle(req *http.Request) (http.Response, error) {
	var name string
	switch segment(req.Resource.Path, 1) {
	case "":
		name = indexPage
	case "health":
		name = healthPage
	default:
		name = strings.TrimPrefix(req.Resource.Path, "/")
	}

	contents, err := h.Public.ReadFile(name)
	if err != nil {
		if errors.Is(err, filesystem.ErrFileNotFound) || errors.Is(err, filesystem.ErrInvalidPath) {
			return pageNotFound(h.Public)
		}
		return http.Response{}, err
	}

	headers := http.Headers{"Content-Type": contentType(name)}
	return http.NewResponse(http.StatusOK, headers, string(contents)), nil
}

func contentType(name string) string {
	switch filesystem.GetFileExtension(name) {
	case ".css":
		return "text/css"
	case ".js":
		return "text/javascript"
	default:
		return "text/html"
	}
}
