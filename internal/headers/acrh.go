package headers

import (
	"strings"

	"github.com/jub0bs/xhr/internal/util"
)

// ACRHValue returns the value of the Access-Control-Request-Headers header
// of a preflight request announcing names: the byte-lowercased names,
// deduplicated, sorted in lexicographical order, and joined by commas
// (without whitespace, as Fetch-compliant browsers do).
// It returns the empty string if names is empty.
func ACRHValue(names []string) string {
	var set util.SortedSet
	for _, name := range names {
		set.Add(util.ByteLowercase(name))
	}
	return strings.Join(set.ToSlice(), ValueSep)
}

// ACAHAllows reports whether request-header name appears in acah, the value
// of an Access-Control-Allow-Headers response header.
// The test is a mere case-insensitive substring search: acah is assumed
// to be a comma-separated list.
func ACAHAllows(acah, name string) bool {
	return strings.Contains(util.ByteLowercase(acah), util.ByteLowercase(name))
}
