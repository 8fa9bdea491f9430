package xhr

import (
	"bufio"
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/jub0bs/xhr/internal/headers"
)

// A Transport performs the network round trips of an [XMLHttpRequest]:
// the main request and, when required, its CORS-preflight request.
//
// Execute must return a non-nil error if the request could not be
// completed (I/O failure); HTTP error statuses are not failures.
// An XMLHttpRequest cancels ctx when aborted or reopened. It treats a panic
// in Execute, or a nil response along with a nil error, as a failure.
// Implementations must be safe for concurrent use.
type Transport interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// The TransportFunc type is an adapter to allow the use of ordinary
// functions as transports.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Execute calls f(ctx, req).
func (f TransportFunc) Execute(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPTransport is a [Transport] backed by a [net/http] client.
//
// The zero value is ready to use and relies on [http.DefaultClient].
type HTTPTransport struct {
	// Client is the client used to perform requests; nil means
	// [http.DefaultClient]. Cookie jars, timeouts, and TLS settings
	// are configured on the client.
	Client *http.Client
	// Compress, if true, makes the transport advertise support for
	// gzip, deflate, and br content codings and decode bodies accordingly.
	Compress bool
}

// Execute performs req.
func (t *HTTPTransport) Execute(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, err
	}
	for _, f := range req.Header {
		hreq.Header.Add(f.Name, f.Value)
	}
	if _, found := req.Header.Get(headers.Accept); !found {
		hreq.Header.Set(headers.Accept, "*/*")
	}
	if t.Compress {
		hreq.Header.Set("Accept-Encoding", "gzip, deflate, br")
	}
	if req.User != nil {
		password, _ := req.User.Password()
		hreq.SetBasicAuth(req.User.Username(), password)
	}
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	hres, err := client.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer hres.Body.Close()

	b, decoded, err := readBody(hres)
	if err != nil {
		return nil, err
	}
	if decoded {
		hres.Header.Del("Content-Encoding")
		hres.Header.Del("Content-Length")
	}
	res := Response{
		StatusCode: hres.StatusCode,
		Status:     strings.TrimPrefix(hres.Status, strconv.Itoa(hres.StatusCode)+" "),
		Body:       b,
	}
	// The order of field lines is lost in http.Header;
	// sort names for a deterministic result.
	names := make([]string, 0, len(hres.Header))
	for name := range hres.Header {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		for _, v := range hres.Header[name] {
			res.Header.Add(name, v)
		}
	}
	return &res, nil
}

// readBody reads the body of hres, undoing any content coding.
// It reports whether it had to decode the body.
func readBody(hres *http.Response) ([]byte, bool, error) {
	var (
		r       io.Reader = hres.Body
		decoded           = true
	)
	switch hres.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(hres.Body)
		if err != nil {
			return nil, false, err
		}
		defer gz.Close()
		r = gz
	case "deflate":
		rc, err := newDeflateReader(hres.Body)
		if err != nil {
			return nil, false, err
		}
		defer rc.Close()
		r = rc
	case "br":
		r = brotli.NewReader(hres.Body)
	default:
		decoded = false
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, false, err
	}
	return b, decoded, nil
}

// newDeflateReader decodes the "deflate" content coding, i.e. zlib-wrapped
// DEFLATE data. Some servers omit the zlib wrapper; raw DEFLATE data is
// accepted as well.
func newDeflateReader(body io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(body)
	hdr, _ := br.Peek(2)
	if !isZlibHeader(hdr) {
		return flate.NewReader(br), nil
	}
	return zlib.NewReader(br)
}

// isZlibHeader reports whether hdr is a valid zlib header
// announcing DEFLATE data (RFC 1950, section 2.2).
func isZlibHeader(hdr []byte) bool {
	if len(hdr) < 2 {
		return false
	}
	const deflateMethod = 8
	cmf, flg := hdr[0], hdr[1]
	return cmf&0x0f == deflateMethod && (uint16(cmf)<<8|uint16(flg))%31 == 0
}
