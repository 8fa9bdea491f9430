package xhr

import "github.com/jub0bs/xhr/internal/util"

// CanonicalProperty maps a property or method name of the scripting-facing
// XMLHttpRequest interface, in any case, to its canonical spelling
// (e.g. "READYSTATE" to "readyState"). It reports whether name is known.
// Scripting hosts emulating case-insensitive property access consult it
// before normal property resolution.
func CanonicalProperty(name string) (string, bool) {
	canonical, found := canonicalProperties[util.ByteLowercase(name)]
	return canonical, found
}

var canonicalProperties = map[string]string{
	"abort":                 "abort",
	"addeventlistener":      "addEventListener",
	"getallresponseheaders": "getAllResponseHeaders",
	"getresponseheader":     "getResponseHeader",
	"onerror":               "onerror",
	"onload":                "onload",
	"onreadystatechange":    "onreadystatechange",
	"open":                  "open",
	"overridemimetype":      "overrideMimeType",
	"readystate":            "readyState",
	"removeeventlistener":   "removeEventListener",
	"responsetext":          "responseText",
	"responsexml":           "responseXML",
	"send":                  "send",
	"setrequestheader":      "setRequestHeader",
	"status":                "status",
	"statustext":            "statusText",
	"withcredentials":       "withCredentials",
}
