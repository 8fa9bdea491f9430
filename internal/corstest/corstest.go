// Package corstest provides a minimal CORS-aware [http.Handler] that plays
// the server side of the CORS protocol in tests of package xhr.
package corstest

import (
	"net/http"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/jub0bs/xhr/internal/headers"
	"github.com/jub0bs/xhr/internal/util"
)

// A Config configures a [Middleware].
type Config struct {
	// Origins lists the allowed origins; "*" allows all of them.
	Origins []string
	// Credentialed makes the middleware include
	// "Access-Control-Allow-Credentials: true" for allowed origins.
	Credentialed bool
	// RequestHeaders lists the allowed request-header names.
	RequestHeaders []string
	// Methods lists the allowed methods (informative only).
	Methods []string
}

// A Middleware answers CORS-preflight requests itself and decorates the
// responses to actual CORS requests. It counts the requests it sees.
type Middleware struct {
	cfg       Config
	preflight atomic.Int64
	actual    atomic.Int64
}

// NewMiddleware returns a Middleware that behaves in accordance with cfg.
func NewMiddleware(cfg Config) *Middleware {
	return &Middleware{cfg: cfg}
}

// Preflights returns the number of preflight requests m has handled.
func (m *Middleware) Preflights() int64 {
	return m.preflight.Load()
}

// Actuals returns the number of non-preflight requests m has handled.
func (m *Middleware) Actuals() int64 {
	return m.actual.Load()
}

// Wrap applies the middleware to h.
func (m *Middleware) Wrap(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get(headers.Origin)
		_, isPreflight := r.Header[headers.ACRM]
		if r.Method == http.MethodOptions && isPreflight {
			m.preflight.Add(1)
			m.handlePreflight(w, r, origin)
			return
		}
		m.actual.Add(1)
		if origin != "" {
			m.allowOrigin(w.Header(), origin)
		}
		h.ServeHTTP(w, r)
	})
}

func (m *Middleware) handlePreflight(w http.ResponseWriter, r *http.Request, origin string) {
	resHdrs := w.Header()
	if !m.allowOrigin(resHdrs, origin) {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	if len(m.cfg.Methods) > 0 {
		resHdrs.Set(headers.ACAM, strings.Join(m.cfg.Methods, headers.ValueSep))
	}
	if len(m.cfg.RequestHeaders) > 0 {
		var set util.SortedSet
		for _, name := range m.cfg.RequestHeaders {
			set.Add(util.ByteLowercase(name))
		}
		resHdrs.Set(headers.ACAH, strings.Join(set.ToSlice(), headers.ValueSep))
	}
	w.WriteHeader(http.StatusNoContent)
}

// allowOrigin sets the ACAO (and, if credentialed, ACAC) header
// if origin is allowed, and reports whether it is.
func (m *Middleware) allowOrigin(resHdrs http.Header, origin string) bool {
	switch {
	case slices.Contains(m.cfg.Origins, origin):
		resHdrs.Set(headers.ACAO, origin)
	case slices.Contains(m.cfg.Origins, headers.ValueWildcard):
		resHdrs.Set(headers.ACAO, headers.ValueWildcard)
	default:
		return false
	}
	if m.cfg.Credentialed {
		resHdrs.Set(headers.ACAC, headers.ValueTrue)
	}
	return true
}
