package xhr

import "github.com/jub0bs/xhr/internal/util"

// A Feature names one of the compatibility toggles that an [XMLHttpRequest]
// consults. Browsers historically disagree on the corresponding behaviors;
// the toggles let hosts emulate one browser or another.
type Feature string

const (
	// FeatureAllowEmptyURL makes Open accept an empty URL,
	// which then resolves to the document's URL.
	FeatureAllowEmptyURL Feature = "xhr-allow-empty-url"
	// FeatureIgnorePortForSameOrigin makes same-origin checks disregard ports.
	FeatureIgnorePortForSameOrigin Feature = "xhr-ignore-port-for-same-origin"
	// FeatureAllowOriginWildcardWithCredentials makes credentialed responses
	// pass the CORS check with "Access-Control-Allow-Origin: *"
	// (Access-Control-Allow-Credentials is still required).
	FeatureAllowOriginWildcardWithCredentials Feature = "xhr-withcredentials-allow-origin-all"
	// FeatureUseContentCharset makes responseText fall back to the charset of
	// the response when the overriding MIME type lacks a usable charset.
	FeatureUseContentCharset Feature = "xhr-use-content-charset"
	// FeatureNoCrossOriginToAbout makes Open fail with a SecurityError
	// on cross-origin about: URLs.
	FeatureNoCrossOriginToAbout Feature = "xhr-no-cross-origin-to-about"
	// FeatureAllResponseHeadersLF makes GetAllResponseHeaders separate
	// lines with LF rather than CRLF.
	FeatureAllResponseHeadersLF Feature = "xhr-all-response-headers-separate-by-lf"
	// FeatureAllResponseHeadersTrailingSeparator makes GetAllResponseHeaders
	// terminate its result with a line separator.
	FeatureAllResponseHeadersTrailingSeparator Feature = "xhr-all-response-headers-append-separator"
	// FeatureFireOpenedAgainInAsyncMode makes asynchronous sends fire an extra
	// readystatechange event (with readyState OPENED) when dispatched.
	FeatureFireOpenedAgainInAsyncMode Feature = "xhr-fire-state-opened-again-in-async-mode"
	// FeatureLengthComputable makes load events report a computable length.
	FeatureLengthComputable Feature = "xhr-length-computable"
)

// Features is the feature-toggle collaborator consulted by an
// [XMLHttpRequest]. Implementations must be safe for concurrent use.
type Features interface {
	HasFeature(f Feature) bool
}

// A FeatureSet is a static set of enabled features.
// A nil *FeatureSet enables no feature.
type FeatureSet struct {
	set util.Set
}

// NewFeatureSet returns a FeatureSet that enables all of fs
// but no other features.
func NewFeatureSet(fs ...Feature) *FeatureSet {
	var s FeatureSet
	for _, f := range fs {
		s.set.Add(string(f))
	}
	return &s
}

// HasFeature reports whether f is enabled.
func (s *FeatureSet) HasFeature(f Feature) bool {
	if s == nil {
		return false
	}
	return s.set.Contains(string(f))
}

// Features returns the enabled features, sorted in lexicographical order.
func (s *FeatureSet) Features() []Feature {
	if s == nil {
		return nil
	}
	elems := s.set.ToSlice()
	fs := make([]Feature, len(elems))
	for i, e := range elems {
		fs[i] = Feature(e)
	}
	return fs
}

type noFeatures struct{}

func (noFeatures) HasFeature(Feature) bool { return false }
