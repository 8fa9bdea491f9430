package util

import "golang.org/x/net/http/httpguts"

// IsToken reports whether str is a valid token, per [RFC 9110].
//
// [RFC 9110]: https://datatracker.ietf.org/doc/html/rfc9110#name-tokens
func IsToken(str string) bool {
	if len(str) == 0 {
		return false
	}
	for _, b := range []byte(str) {
		if !httpguts.IsTokenRune(rune(b)) {
			return false
		}
	}
	return true
}
