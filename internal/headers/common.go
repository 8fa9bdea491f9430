package headers

import "golang.org/x/net/http/httpguts"

// header names in canonical format
const (
	// request headers set by the engine itself
	Origin      = "Origin"
	Referer     = "Referer"
	Accept      = "Accept"
	ContentType = "Content-Type"

	// preflight-only request headers
	ACRM = "Access-Control-Request-Method"
	ACRH = "Access-Control-Request-Headers"

	// common response headers
	ACAO = "Access-Control-Allow-Origin"
	ACAC = "Access-Control-Allow-Credentials"

	// preflight-only response headers
	ACAM = "Access-Control-Allow-Methods"
	ACAH = "Access-Control-Allow-Headers"
)

const (
	ValueTrue     = "true"
	ValueWildcard = "*"
)

const ValueSep = ","

// IsValid reports whether name is a valid header name,
// [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#header-name
func IsValid(name string) bool {
	return httpguts.ValidHeaderFieldName(name)
}

// IsValidValue reports whether value is a valid header value,
// [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#header-value
func IsValidValue(value string) bool {
	return httpguts.ValidHeaderFieldValue(value)
}
