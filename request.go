package xhr

import (
	"net/url"

	"github.com/jub0bs/xhr/internal/headers"
)

// A Request is a request as handed to a [Transport]: either the request
// configured by [XMLHttpRequest.Open] and sent by [XMLHttpRequest.Send],
// or the CORS-preflight request built ahead of it.
//
// Transports must not modify the requests they are given.
type Request struct {
	// Method is the byte-uppercase request method.
	Method string
	// URL is the absolute target URL, stripped of any fragment.
	URL *url.URL
	// Async reports whether the request was opened in asynchronous mode.
	Async bool
	// WithCredentials reports whether credentials (cookies, HTTP
	// authentication) should accompany a cross-origin request.
	WithCredentials bool
	// Header holds the request headers, including those set by the engine
	// (Referer, Origin, and the Access-Control-Request-* headers).
	Header HeaderList
	// Body is the request body; nil means no body.
	Body []byte
	// User holds the credentials passed to Open, if any; transports
	// should send them using the Basic authentication scheme.
	User *url.Userinfo
}

// Origin returns the serialized origin that r carries in its Origin header,
// and whether r carries one at all. Only cross-origin requests do.
func (r *Request) Origin() (string, bool) {
	return r.Header.Get(headers.Origin)
}

// clone returns a deep copy of r.
func (r *Request) clone() *Request {
	r2 := *r
	u := *r.URL
	r2.URL = &u
	r2.Header = r.Header.Clone()
	if r.Body != nil {
		r2.Body = append([]byte(nil), r.Body...)
	}
	return &r2
}
