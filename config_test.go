package xhr

import (
	"context"
	"strings"
	"testing"
)

func TestNewWithInvalidConfig(t *testing.T) {
	tr := TransportFunc(func(context.Context, *Request) (*Response, error) {
		return nil, nil
	})
	cases := []struct {
		desc    string
		cfg     Config
		wantMsg []string
	}{
		{
			desc:    "empty config",
			wantMsg: []string{"document URL is required", "transport is required"},
		}, {
			desc: "relative document URL",
			cfg: Config{
				DocumentURL: "/index.html",
				Transport:   tr,
			},
			wantMsg: []string{`invalid document URL "/index.html"`},
		}, {
			desc: "unparsable document URL",
			cfg: Config{
				DocumentURL: "http://[::1",
				Transport:   tr,
			},
			wantMsg: []string{"invalid document URL"},
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			x, err := New(tc.cfg)
			if x != nil {
				t.Errorf("got non-nil *XMLHttpRequest")
			}
			if err == nil {
				t.Fatal("got nil error; want non-nil error")
			}
			for _, msg := range tc.wantMsg {
				if !strings.Contains(err.Error(), msg) {
					const tmpl = "got error %q; want it to contain %q"
					t.Errorf(tmpl, err, msg)
				}
			}
			if !strings.HasPrefix(err.Error(), "xhr: ") {
				t.Errorf("got error %q; want it prefixed by %q", err, "xhr: ")
			}
		}
		t.Run(tc.desc, f)
	}
}

func TestNewWithValidConfig(t *testing.T) {
	cfg := Config{
		DocumentURL: "https://example.com:8443/app/#top",
		Transport:   &HTTPTransport{},
	}
	x, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := x.ReadyState(); got != Unsent {
		t.Errorf("got readyState %s; want UNSENT", got)
	}
	icfg := x.icfg
	const wantURL = "https://example.com:8443/app/"
	if got := icfg.docURL.String(); got != wantURL {
		t.Errorf("got document URL %q; want %q", got, wantURL)
	}
	const wantOrigin = "https://example.com:8443"
	if got := icfg.docOrigin.String(); got != wantOrigin {
		t.Errorf("got document origin %q; want %q", got, wantOrigin)
	}
	if icfg.features == nil || icfg.syncPolicy == nil || icfg.logger == nil {
		t.Error("defaults were not filled in")
	}
	if icfg.syncPolicy.ProcessSynchronously(nil, true) {
		t.Error("default sync policy processes async requests synchronously")
	}
	if !icfg.syncPolicy.ProcessSynchronously(nil, false) {
		t.Error("default sync policy processes sync requests asynchronously")
	}
}
