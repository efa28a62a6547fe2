package http

import "net/http"

// Handler is the plain handler func mounted on a Router
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing seam modules mount against. Only chi implements it
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Method(method, path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}
