// Package handler holds the handlers the router dispatches to: static pages
// from the public directory, the shipping web service and the not found page.
package handler

import (
	"errors"
	"strings"

	"github.com/freekieb7/httpcore/filesystem"
	"github.com/freekieb7/httpcore/http"
)

const (
	indexPage    = "index.html"
	healthPage   = "health.html"
	notFoundPage = "404.html"
)

type PageNotFoundHandler struct {
	Public filesystem.Filesystem
}

func (h PageNotFoundHandler) Handle(req *http.Request) (http.Response, error) {
	return pageNotFound(h.Public)
}

// pageNotFound answers with the 404 page, or an empty body when the public
// directory has none.
func pageNotFound(public filesystem.Filesystem) (http.Response, error) {
	contents, err := public.ReadFile(notFoundPage)
	if err != nil && !errors.Is(err, filesystem.ErrFileNotFound) {
		return http.Response{}, err
	}

	return http.NewResponse(http.StatusNotFound, nil, string(contents)), nil
}

func segment(path string, index int) string {
	segments := strings.Split(path, "/")
	if index >= len(segments) {
		return ""
	}
	return segments[index]
}
