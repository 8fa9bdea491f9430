package origins

import (
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/jub0bs/xhr/internal/util"
	"golang.org/x/net/idna"
)

const (
	schemeHostSep = "://" // scheme-host separator
	hostPortSep   = ':'   // host-port separator
)

// Null is the serialization of an opaque origin.
const Null = "null"

// Origin represents a (tuple) [Web origin].
//
// [Web origin]: https://developer.mozilla.org/en-US/docs/Glossary/Origin
type Origin struct {
	// Scheme is the origin's byte-lowercase scheme.
	Scheme string
	// Host is the origin's host, in ASCII and lower case.
	// IPv6 addresses are stored without brackets.
	Host string
	// Port is the origin's port (if any).
	// The zero value marks the absence of an explicit port;
	// in particular, an explicit default port (e.g. 80 for http)
	// is not elided.
	Port int
}

// FromURL returns the origin of u.
// Only the explicit port of u, if any, is retained.
func FromURL(u *url.URL) Origin {
	o := Origin{
		Scheme: util.ByteLowercase(u.Scheme),
		Host:   normalizeHost(u.Hostname()),
	}
	if p := u.Port(); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			o.Port = port
		}
	}
	return o
}

// IsOpaque reports whether o has no host, as is the case of the origins of
// URLs like about:blank or data:text/plain,foo.
func (o Origin) IsOpaque() bool {
	return o.Host == ""
}

// String returns the ASCII serialization of o, e.g. "https://example.com:8080",
// or "null" if o is opaque.
func (o Origin) String() string {
	if o.IsOpaque() {
		return Null
	}
	var sb strings.Builder
	sb.WriteString(o.Scheme)
	sb.WriteString(schemeHostSep)
	if strings.IndexByte(o.Host, hostPortSep) >= 0 { // IPv6
		sb.WriteByte('[')
		sb.WriteString(o.Host)
		sb.WriteByte(']')
	} else {
		sb.WriteString(o.Host)
	}
	if o.Port != 0 {
		sb.WriteByte(hostPortSep)
		sb.WriteString(strconv.Itoa(o.Port))
	}
	return sb.String()
}

// SameOrigin reports whether a and b are the same origin. Schemes and hosts
// must match; ports must match too, unless ignorePort is true.
// Two opaque origins are never the same origin.
func SameOrigin(a, b Origin, ignorePort bool) bool {
	if a.IsOpaque() || b.IsOpaque() {
		return false
	}
	if a.Scheme != b.Scheme || a.Host != b.Host {
		return false
	}
	return ignorePort || a.Port == b.Port
}

// normalizeHost converts host to its lower-case ASCII form.
// Hosts that idna rejects (e.g. some containing underscores)
// are merely byte-lowercased.
func normalizeHost(host string) string {
	if host == "" {
		return ""
	}
	if ip, err := netip.ParseAddr(host); err == nil {
		return ip.String()
	}
	profileOnce.Do(initProfile)
	ascii, err := profile.ToASCII(host)
	if err != nil {
		return util.ByteLowercase(host)
	}
	return ascii
}

var (
	profileOnce sync.Once     // guards init of profile via initProfile
	profile     *idna.Profile // lazily initialized
)

func initProfile() {
	profile = idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
	)
}
