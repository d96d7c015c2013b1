package http

import "strings"

// Category names the handler a request is dispatched to.
type Category uint8

const (
	CategoryNotFound Category = iota
	CategoryStaticPage
	CategoryWebService
)

func (c Category) String() string {
	switch c {
	case CategoryStaticPage:
		return "static-page"
	case CategoryWebService:
		return "web-service"
	default:
		return "not-found"
	}
}

// Select picks the handler category for req. Only GET requests are served;
// those whose first path segment is "api" go to the web service, everything
// else to the static pages.
func Select(req *Request) Category {
	if req.Method != MethodGet {
		return CategoryNotFound
	}

	segments := strings.Split(req.Resource.Path, "/")
	if len(segments) > 1 && segments[1] == "api" {
		return CategoryWebService
	}

	return CategoryStaticPage
}

var NotFoundHandler Handler = HandlerFunc(func(req *Request) (Response, error) {
	return NewResponse(StatusNotFound, nil, ""), nil
})
