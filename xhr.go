package xhr

import (
	"net/url"
	"strings"
	"sync"

	"github.com/jub0bs/xhr/internal/headers"
	"github.com/jub0bs/xhr/internal/methods"
	"github.com/jub0bs/xhr/internal/origins"
	"github.com/jub0bs/xhr/xhrerrors"
	"go.uber.org/zap"
)

// An XMLHttpRequest emulates the eponymous browser object: it configures a
// request (Open, SetRequestHeader), sends it (Send) either synchronously or
// asynchronously, enforces the same-origin policy and the CORS protocol
// (including preflight) along the way, and exposes the response through
// accessors whose results depend on its [ReadyState].
//
// Listeners registered via [XMLHttpRequest.AddEventListener] are notified
// of every state transition (readystatechange) and of the outcome of each
// request (load or error).
//
// XMLHttpRequests are safe for concurrent use by multiple goroutines:
// the caller's goroutine and the background goroutine of an asynchronous
// send never mutate it concurrently, and calling Open or Abort while
// a send is in flight prevents that send from mutating it any further.
type XMLHttpRequest struct {
	icfg   *internalConfig
	log    *zap.Logger
	events emitter
	jobs   sync.WaitGroup

	mu              sync.Mutex
	state           ReadyState
	lifecycle       uint64   // incremented by each successful Open
	req             *Request // pending request; nil once sent
	sent            bool
	withCredentials bool
	overrideMIME    string
	overridden      bool
	res             *Response // nil before HEADERS_RECEIVED and on failure
	doc             any
	docParsed       bool
	job             *job // current job, if any
}

// New creates an XMLHttpRequest in the UNSENT state that behaves in
// accordance with cfg. If cfg is invalid, it returns a nil
// [*XMLHttpRequest] and some non-nil error.
func New(cfg Config) (*XMLHttpRequest, error) {
	icfg, err := newInternalConfig(&cfg)
	if err != nil {
		return nil, err
	}
	x := XMLHttpRequest{
		icfg: icfg,
		log:  icfg.logger,
	}
	return &x, nil
}

// An OpenOption configures a single call to [XMLHttpRequest.Open].
type OpenOption func(*openConfig)

type openConfig struct {
	async bool
	user  *url.Userinfo
}

// Async sets the async flag of the request being opened (true by default).
func Async(async bool) OpenOption {
	return func(c *openConfig) { c.async = async }
}

// User attaches Basic credentials to the request being opened.
func User(user, password string) OpenOption {
	return func(c *openConfig) { c.user = url.UserPassword(user, password) }
}

// Open configures a new request and moves x to the OPENED state,
// invalidating any request still in flight. rawURL is resolved against
// the document URL.
//
// If method is not a known HTTP method (or is forbidden, e.g. TRACE),
// Open discards any pending request, leaves the state of x unchanged,
// and returns nil; a subsequent Send is then a no-op.
//
// Open fails with a [*xhrerrors.SyntaxError] if rawURL is empty (unless
// [FeatureAllowEmptyURL] is enabled) or invalid, and with a
// [*xhrerrors.SecurityError] if the target is forbidden by the origin
// policy. No state transition accompanies those errors.
func (x *XMLHttpRequest) Open(method, rawURL string, opts ...OpenOption) error {
	oc := openConfig{async: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&oc)
		}
	}
	icfg := x.icfg
	m, ok := methods.Normalize(method)
	if !ok {
		x.log.Debug("rejected method", zap.String("method", method))
		x.mu.Lock()
		x.req = nil
		x.mu.Unlock()
		return nil
	}
	if strings.TrimSpace(rawURL) == "" && !icfg.features.HasFeature(FeatureAllowEmptyURL) {
		return &xhrerrors.SyntaxError{Value: rawURL, Reason: "empty"}
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return &xhrerrors.SyntaxError{Value: rawURL, Reason: "invalid"}
	}
	target := icfg.docURL.ResolveReference(ref)
	target.Fragment = ""
	target.RawFragment = ""

	sameOrigin := icfg.policy.IsSameOrigin(icfg.docURL, target)
	if !sameOrigin &&
		origins.FromURL(target).Scheme == "about" &&
		icfg.features.HasFeature(FeatureNoCrossOriginToAbout) {
		return &xhrerrors.SecurityError{URL: target.String()}
	}

	req := Request{
		Method: m,
		URL:    target,
		Async:  oc.async,
		User:   oc.user,
	}
	req.Header.Set(headers.Referer, icfg.docURL.String())
	if !sameOrigin {
		req.Header.Set(headers.Origin, icfg.docOrigin.String())
	}

	x.mu.Lock()
	if x.job != nil {
		x.job.cancel()
		x.job = nil
	}
	x.lifecycle++
	x.req = &req
	x.sent = false
	x.overrideMIME = ""
	x.overridden = false
	x.res = nil
	x.doc = nil
	x.docParsed = false
	x.state = Opened
	x.mu.Unlock()

	if oc.async {
		x.emit(&Event{Type: EventReadyStateChange}, nil)
	}
	return nil
}

// SetRequestHeader sets a header of the pending request; a later call with
// the same (case-insensitive) name overrides the earlier value.
// It fails with a [*xhrerrors.InvalidStateError] unless x is OPENED and
// Send has not been called since.
// Forbidden header names (e.g. Cookie, Host, Sec-*) as well as invalid names
// and values are silently dropped.
func (x *XMLHttpRequest) SetRequestHeader(name, value string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.state != Opened || x.req == nil || x.sent {
		return &xhrerrors.InvalidStateError{
			Op:     "setRequestHeader",
			Reason: "the object must be opened and not sent",
		}
	}
	if headers.IsForbiddenRequestHeaderName(name) {
		x.log.Debug("dropped forbidden request header", zap.String("name", name))
		return nil
	}
	if !headers.IsValid(name) || !headers.IsValidValue(value) {
		x.log.Debug("dropped invalid request header", zap.String("name", name))
		return nil
	}
	x.req.Header.Set(name, value)
	return nil
}

// OverrideMimeType makes the response be interpreted as having MIME type
// mime; in particular, its charset parameter governs the decoding of
// [XMLHttpRequest.ResponseText]. It fails with a
// [*xhrerrors.InvalidStateError] once x is beyond OPENED.
func (x *XMLHttpRequest) OverrideMimeType(mime string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.state > Opened {
		return &xhrerrors.InvalidStateError{
			Op:     "overrideMimeType",
			Reason: "the response headers have already been received",
		}
	}
	x.overrideMIME = mime
	x.overridden = true
	return nil
}

// WithCredentials reports whether cross-origin requests carry credentials.
func (x *XMLHttpRequest) WithCredentials() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.withCredentials
}

// SetWithCredentials sets whether cross-origin requests carry credentials.
// It fails with a [*xhrerrors.InvalidStateError] unless x is UNSENT or
// OPENED and Send has not been called since.
func (x *XMLHttpRequest) SetWithCredentials(b bool) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if (x.state != Unsent && x.state != Opened) || x.sent {
		return &xhrerrors.InvalidStateError{
			Op:     "withCredentials",
			Reason: "the request has already been sent",
		}
	}
	x.withCredentials = b
	return nil
}

// Abort cancels the request in flight, if any: neither state transitions
// nor events result from it afterwards. Abort does not change the state
// of x. Calling Abort more than once has no additional effect.
func (x *XMLHttpRequest) Abort() {
	x.mu.Lock()
	j := x.job
	x.job = nil
	x.mu.Unlock()
	if j != nil {
		j.cancel()
		x.log.Debug("aborted request", zap.Uint64("job", j.id))
	}
}

// AddEventListener registers l for events of type typ; listeners of a given
// type are invoked in registration order. It returns a function that
// unregisters l.
func (x *XMLHttpRequest) AddEventListener(typ string, l Listener) (remove func()) {
	if l == nil {
		return func() {}
	}
	return x.events.add(typ, l)
}

// Wait blocks until the background goroutine of the latest asynchronous
// send (if any) has terminated.
func (x *XMLHttpRequest) Wait() {
	x.jobs.Wait()
}

// ReadyState returns the current state of x.
func (x *XMLHttpRequest) ReadyState() ReadyState {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state
}

// response returns the current response if its status and headers are
// available, or nil otherwise. Precondition: x.mu is held.
func (x *XMLHttpRequest) response() *Response {
	if x.state < HeadersReceived {
		return nil
	}
	return x.res
}

// Status returns the status code of the response,
// or 0 before HEADERS_RECEIVED or after a network error.
func (x *XMLHttpRequest) Status() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	if res := x.response(); res != nil {
		return res.StatusCode
	}
	return 0
}

// StatusText returns the status message of the response,
// or "" before HEADERS_RECEIVED or after a network error.
func (x *XMLHttpRequest) StatusText() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	if res := x.response(); res != nil {
		return res.Status
	}
	return ""
}

// ResponseText returns the response body decoded as text, or "" before
// HEADERS_RECEIVED, after a network error, or if no charset can be resolved.
func (x *XMLHttpRequest) ResponseText() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	if v := x.view(); v != nil {
		return v.text()
	}
	return ""
}

// view returns the externally visible view of the current response.
// Precondition: x.mu is held.
func (x *XMLHttpRequest) view() *responseView {
	res := x.response()
	if res == nil {
		return nil
	}
	return &responseView{
		res:          res,
		overrideMIME: x.overrideMIME,
		overridden:   x.overridden,
		features:     x.icfg.features,
	}
}

// ResponseXML returns the document that the configured [DocumentParser]
// builds from the response, or nil before DONE, after a network error,
// if no parser is configured, or if the parser fails or declines.
func (x *XMLHttpRequest) ResponseXML() any {
	x.mu.Lock()
	if x.state != Done || x.icfg.parser == nil {
		x.mu.Unlock()
		return nil
	}
	if x.docParsed {
		doc := x.doc
		x.mu.Unlock()
		return doc
	}
	v := x.view()
	lifecycle := x.lifecycle
	x.mu.Unlock()
	if v == nil {
		return nil
	}

	doc, err := x.icfg.parser.ParseDocument(v.contentType(), strings.NewReader(v.text()))
	if err != nil {
		x.log.Debug("failed to parse response document", zap.Error(err))
		doc = nil
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.lifecycle == lifecycle {
		x.doc = doc
		x.docParsed = true
	}
	return doc
}

// GetResponseHeader returns the value of the response header named name
// (multiple field lines are joined by ", "), and whether such a header
// exists. Set-Cookie headers are never exposed.
func (x *XMLHttpRequest) GetResponseHeader(name string) (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	res := x.response()
	if res == nil || headers.IsForbiddenResponseHeaderName(name) {
		return "", false
	}
	vs := res.Header.Values(name)
	if len(vs) == 0 {
		return "", false
	}
	return strings.Join(vs, ", "), true
}

// GetAllResponseHeaders returns all response headers (but Set-Cookie ones)
// as "name: value" lines, or "" before HEADERS_RECEIVED or after a network
// error. Lines are separated by CRLF, or by LF if
// [FeatureAllResponseHeadersLF] is enabled; a trailing separator is
// appended only if [FeatureAllResponseHeadersTrailingSeparator] is enabled.
func (x *XMLHttpRequest) GetAllResponseHeaders() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	res := x.response()
	if res == nil {
		return ""
	}
	features := x.icfg.features
	sep := "\r\n"
	if features.HasFeature(FeatureAllResponseHeadersLF) {
		sep = "\n"
	}
	var sb strings.Builder
	for _, f := range res.Header {
		if headers.IsForbiddenResponseHeaderName(f.Name) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
	}
	if sb.Len() > 0 && features.HasFeature(FeatureAllResponseHeadersTrailingSeparator) {
		sb.WriteString(sep)
	}
	return sb.String()
}

func (x *XMLHttpRequest) emit(ev *Event, live func() bool) {
	ev.Target = x
	x.events.emit(ev, live)
}
