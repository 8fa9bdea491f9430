package origins

import (
	"net/url"
	"testing"
)

func TestFromURL(t *testing.T) {
	cases := []struct {
		desc string
		url  string
		want Origin
		str  string
	}{
		{
			desc: "domain without port",
			url:  "https://example.com/index.html",
			want: Origin{Scheme: "https", Host: "example.com"},
			str:  "https://example.com",
		}, {
			desc: "domain with explicit default port",
			url:  "http://example.com:80/",
			want: Origin{Scheme: "http", Host: "example.com", Port: 80},
			str:  "http://example.com:80",
		}, {
			desc: "upper-case scheme and host",
			url:  "HTTP://EXAMPLE.com:8080/a?b#c",
			want: Origin{Scheme: "http", Host: "example.com", Port: 8080},
			str:  "http://example.com:8080",
		}, {
			desc: "unicode host",
			url:  "https://résumé.example/",
			want: Origin{Scheme: "https", Host: "xn--rsum-bpad.example"},
			str:  "https://xn--rsum-bpad.example",
		}, {
			desc: "ipv6",
			url:  "http://[::1]:9090/",
			want: Origin{Scheme: "http", Host: "::1", Port: 9090},
			str:  "http://[::1]:9090",
		}, {
			desc: "ipv4",
			url:  "http://127.0.0.1/",
			want: Origin{Scheme: "http", Host: "127.0.0.1"},
			str:  "http://127.0.0.1",
		}, {
			desc: "about:blank",
			url:  "about:blank",
			want: Origin{Scheme: "about"},
			str:  "null",
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			u, err := url.Parse(tc.url)
			if err != nil {
				t.Fatalf("url.Parse(%q): %v", tc.url, err)
			}
			got := FromURL(u)
			if got != tc.want {
				const tmpl = "FromURL(%q): got %#v; want %#v"
				t.Errorf(tmpl, tc.url, got, tc.want)
			}
			if s := got.String(); s != tc.str {
				const tmpl = "FromURL(%q).String(): got %q; want %q"
				t.Errorf(tmpl, tc.url, s, tc.str)
			}
		}
		t.Run(tc.desc, f)
	}
}

func TestSameOrigin(t *testing.T) {
	cases := []struct {
		desc       string
		a, b       string
		ignorePort bool
		want       bool
	}{
		{desc: "identical", a: "http://host/", b: "http://host/x", want: true},
		{desc: "case-insensitive host", a: "http://HOST/", b: "http://host/", want: true},
		{desc: "distinct hosts", a: "http://a.example/", b: "http://b.example/", want: false},
		{desc: "distinct schemes", a: "http://host/", b: "https://host/", want: false},
		{desc: "distinct schemes ignoring port", a: "http://host/", b: "https://host/", ignorePort: true, want: false},
		{desc: "distinct explicit ports", a: "http://host:8080/", b: "http://host:9090/", want: false},
		{desc: "distinct explicit ports ignoring port", a: "http://host:8080/", b: "http://host:9090/", ignorePort: true, want: true},
		{desc: "implicit vs explicit default port", a: "http://host/", b: "http://host:80/", want: false},
		{desc: "implicit vs explicit default port ignoring port", a: "http://host/", b: "http://host:80/", ignorePort: true, want: true},
		{desc: "opaque", a: "about:blank", b: "about:blank", want: false},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			a := FromURL(mustParse(t, tc.a))
			b := FromURL(mustParse(t, tc.b))
			got := SameOrigin(a, b, tc.ignorePort)
			if got != tc.want {
				const tmpl = "SameOrigin(%q, %q, %t): got %t; want %t"
				t.Errorf(tmpl, tc.a, tc.b, tc.ignorePort, got, tc.want)
			}
		}
		t.Run(tc.desc, f)
	}
}

func mustParse(t *testing.T, rawURL string) *url.URL {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", rawURL, err)
	}
	return u
}
