package xhr

import (
	"mime"
	"strings"

	"github.com/jub0bs/xhr/internal/headers"
	"github.com/jub0bs/xhr/internal/util"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// A Response is what a [Transport] produces for a [Request].
// Responses must not be modified once returned by a Transport.
type Response struct {
	// StatusCode is the status code, e.g. 200.
	StatusCode int
	// Status is the status message, e.g. "OK".
	Status string
	// Header holds the response headers, in the order received.
	Header HeaderList
	// Body holds the (decoded) response body.
	Body []byte
}

// ContentType returns the value of the Content-Type header of r,
// or the empty string if absent.
func (r *Response) ContentType() string {
	v, _ := r.Header.Get(headers.ContentType)
	return v
}

// ContentLength returns the length of the response body.
func (r *Response) ContentLength() int64 {
	return int64(len(r.Body))
}

// ContentCharset returns the encoding of r's body, as specified by the
// charset parameter of its Content-Type header, or sniffed from the body of
// HTML documents; it defaults to UTF-8. The second result is the canonical
// name of that encoding.
func (r *Response) ContentCharset() (encoding.Encoding, string) {
	ct := r.ContentType()
	mediaType, params, err := mime.ParseMediaType(ct)
	if err == nil {
		if enc, name := lookupCharset(params["charset"]); enc != nil {
			return enc, name
		}
	}
	if mediaType == "text/html" {
		enc, name, _ := charset.DetermineEncoding(r.Body, ct)
		return enc, name
	}
	enc, name := charset.Lookup("utf-8")
	return enc, name
}

// lookupCharset returns the encoding labelled label, or nil if there is
// no such encoding.
func lookupCharset(label string) (encoding.Encoding, string) {
	label = strings.TrimSpace(label)
	if !util.IsToken(label) {
		return nil, ""
	}
	return charset.Lookup(label)
}

// A responseView is the externally visible rendition of a response,
// i.e. a response seen through the MIME type override (if any).
type responseView struct {
	res          *Response
	overrideMIME string
	overridden   bool
	features     Features
}

// charset resolves the encoding used for decoding the body into text.
// A nil result means that no encoding could be resolved.
func (v *responseView) charset() encoding.Encoding {
	if !v.overridden {
		enc, _ := v.res.ContentCharset()
		return enc
	}
	var enc encoding.Encoding
	if _, params, err := mime.ParseMediaType(v.overrideMIME); err == nil {
		enc, _ = lookupCharset(params["charset"])
	}
	if enc == nil && v.features.HasFeature(FeatureUseContentCharset) {
		enc, _ = v.res.ContentCharset()
	}
	return enc
}

// text decodes the body into a string. It returns the empty string
// if no encoding can be resolved or if decoding fails.
func (v *responseView) text() string {
	enc := v.charset()
	if enc == nil {
		return ""
	}
	b, _, err := transform.Bytes(enc.NewDecoder(), v.res.Body)
	if err != nil {
		return ""
	}
	return string(b)
}

// contentType returns the override MIME type if any,
// or else the Content-Type of the response.
func (v *responseView) contentType() string {
	if v.overridden {
		return v.overrideMIME
	}
	return v.res.ContentType()
}
