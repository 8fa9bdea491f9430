package headers

import "github.com/jub0bs/xhr/internal/util"

// IsForbiddenResponseHeaderName reports whether name is a
// forbidden response-header name [per the Fetch standard].
// Such headers are never exposed by getResponseHeader and
// getAllResponseHeaders. The comparison is case-insensitive.
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#forbidden-response-header-name
func IsForbiddenResponseHeaderName(name string) bool {
	switch util.ByteLowercase(name) {
	case "set-cookie",
		"set-cookie2":
		return true
	default:
		return false
	}
}
