package headers

import (
	"strings"

	"github.com/jub0bs/xhr/internal/util"
)

// IsForbiddenRequestHeaderName reports whether name is a request-header name
// that callers may never set. The comparison is case-insensitive.
func IsForbiddenRequestHeaderName(name string) bool {
	name = util.ByteLowercase(name)
	switch name {
	case "accept-charset",
		"accept-encoding",
		"connection",
		"content-length",
		"cookie",
		"cookie2",
		"content-transfer-encoding",
		"date",
		"expect",
		"host",
		"keep-alive",
		"referer",
		"te",
		"trailer",
		"transfer-encoding",
		"upgrade",
		"user-agent",
		"via":
		return true
	default:
		return strings.HasPrefix(name, "proxy-") ||
			strings.HasPrefix(name, "sec-")
	}
}

// IsPreflightSignificant reports whether a request header of the given name
// and value, when present in a cross-origin request, calls for a preflight.
// The comparison of name is case-insensitive.
func IsPreflightSignificant(name, value string) bool {
	switch util.ByteLowercase(name) {
	case "content-type":
		return !IsSafelistedContentType(value)
	case "accept",
		"accept-language",
		"content-language",
		"referer",
		"accept-encoding",
		"origin":
		return false
	default:
		return true
	}
}

// IsSafelistedContentType reports whether value, byte-lowercased and stripped
// of any parameters (e.g. "; charset=utf-8"), is one of the three MIME types
// that a simple request may carry.
func IsSafelistedContentType(value string) bool {
	essence, _, _ := strings.Cut(value, ";")
	essence = strings.TrimSpace(util.ByteLowercase(essence))
	return safelistedContentTypes.Contains(essence)
}

var safelistedContentTypes = util.NewSet(
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"text/plain",
)
