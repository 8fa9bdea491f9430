package xhr

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jub0bs/xhr/internal/headers"
	"github.com/jub0bs/xhr/internal/methods"
	"github.com/jub0bs/xhr/internal/origins"
)

// An OriginPolicy makes the same-origin and CORS decisions of an
// [XMLHttpRequest]. Its zero value enables no feature.
//
// OriginPolicy does not enforce Access-Control-Allow-Methods
// during preflight: only Access-Control-Allow-Origin and
// Access-Control-Allow-Headers are checked.
type OriginPolicy struct {
	Features Features
}

func (p OriginPolicy) hasFeature(f Feature) bool {
	return p.Features != nil && p.Features.HasFeature(f)
}

// IsSameOrigin reports whether target is same-origin with document.
// Schemes and hosts must match; ports must match too, unless
// [FeatureIgnorePortForSameOrigin] is enabled.
func (p OriginPolicy) IsSameOrigin(document, target *url.URL) bool {
	ignorePort := p.hasFeature(FeatureIgnorePortForSameOrigin)
	return origins.SameOrigin(origins.FromURL(document), origins.FromURL(target), ignorePort)
}

// RequiresPreflight reports whether req, if cross-origin, must be preceded
// by a CORS-preflight request: its method is not one of GET, HEAD, and POST,
// or it carries at least one preflight-significant header.
func (p OriginPolicy) RequiresPreflight(req *Request) bool {
	if !methods.IsSafelisted(req.Method) {
		return true
	}
	return len(significantHeaderNames(req)) > 0
}

// BuildPreflightRequest returns the CORS-preflight request for req.
// The Access-Control-Request-Headers header is omitted when req carries no
// preflight-significant header.
func (p OriginPolicy) BuildPreflightRequest(req *Request) *Request {
	u := *req.URL
	pre := Request{
		Method: http.MethodOptions,
		URL:    &u,
		Async:  req.Async,
	}
	if origin, ok := req.Origin(); ok {
		pre.Header.Set(headers.Origin, origin)
	}
	pre.Header.Set(headers.ACRM, req.Method)
	if acrh := headers.ACRHValue(significantHeaderNames(req)); acrh != "" {
		pre.Header.Set(headers.ACRH, acrh)
	}
	return &pre
}

// IsPreflightAuthorized reports whether res, the response to the preflight
// request of req, authorizes req: Access-Control-Allow-Origin must be "*" or
// match the Origin of req exactly, and Access-Control-Allow-Headers must list
// every preflight-significant header of req.
func (p OriginPolicy) IsPreflightAuthorized(res *Response, req *Request) bool {
	origin, _ := req.Origin()
	acao, _ := res.Header.Get(headers.ACAO)
	if acao == "" || (acao != headers.ValueWildcard && acao != origin) {
		return false
	}
	// Some servers split the list across multiple field lines.
	acah := strings.Join(res.Header.Values(headers.ACAH), headers.ValueSep)
	for _, name := range significantHeaderNames(req) {
		if !headers.ACAHAllows(acah, name) {
			return false
		}
	}
	return true
}

// IsResponseAuthorized reports whether res, the response to req, passes the
// CORS check. Requests that carry no Origin header always do.
// Credentialed requests additionally require
// "Access-Control-Allow-Credentials: true", and only accept a wildcard
// Access-Control-Allow-Origin if
// [FeatureAllowOriginWildcardWithCredentials] is enabled.
func (p OriginPolicy) IsResponseAuthorized(res *Response, req *Request) bool {
	origin, found := req.Origin()
	if !found {
		return true
	}
	allow, _ := res.Header.Get(headers.ACAO)
	if !req.WithCredentials {
		return allow == origin || allow == headers.ValueWildcard
	}
	if allow != origin &&
		!(allow == headers.ValueWildcard && p.hasFeature(FeatureAllowOriginWildcardWithCredentials)) {
		return false
	}
	acac, _ := res.Header.Get(headers.ACAC)
	return acac == headers.ValueTrue
}

// significantHeaderNames returns the names of the preflight-significant
// headers of req.
func significantHeaderNames(req *Request) []string {
	var names []string
	for _, f := range req.Header {
		if headers.IsPreflightSignificant(f.Name, f.Value) {
			names = append(names, f.Name)
		}
	}
	return names
}
