package xhr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/jub0bs/xhr/internal/headers"
	"github.com/jub0bs/xhr/xhrerrors"
	"go.uber.org/zap"
)

// A job is the cancellation handle of one send.
// At most one job is current per XMLHttpRequest; only the current,
// uncancelled job may mutate its XMLHttpRequest.
type job struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
	async  bool
}

// Send sends the pending request, with body as its request body (nil means
// no body; GET and HEAD requests never carry one). Send is a no-op if no
// request is pending, i.e. if Open has not been called since the last Send
// or if the last call to Open was rejected.
//
// Whether the request is processed synchronously is decided by the
// configured [SyncPolicy]. In synchronous mode, Send returns once x is DONE;
// a failure (transport error, rejected preflight, failed CORS check) is
// returned as a [*xhrerrors.NetworkError]. In asynchronous mode, Send
// returns immediately (always with a nil error) and failures are reported
// through an "error" event.
func (x *XMLHttpRequest) Send(body []byte) error {
	x.mu.Lock()
	req := x.req
	if req == nil {
		x.mu.Unlock()
		return nil
	}
	x.req = nil
	x.sent = true
	lifecycle := x.lifecycle
	req.WithCredentials = x.withCredentials
	x.mu.Unlock()

	if body != nil && req.Method != http.MethodGet && req.Method != http.MethodHead {
		req.Body = body
		if _, found := req.Header.Get(headers.ContentType); !found {
			req.Header.Set(headers.ContentType, "text/plain;charset=UTF-8")
		}
	}
	synchronous := x.icfg.syncPolicy.ProcessSynchronously(req, req.Async)

	ctx, cancel := context.WithCancel(context.Background())
	x.mu.Lock()
	if x.lifecycle != lifecycle { // reopened in the meantime
		x.mu.Unlock()
		cancel()
		return nil
	}
	j := &job{
		id:     lifecycle,
		ctx:    ctx,
		cancel: cancel,
		async:  !synchronous,
	}
	x.job = j
	x.mu.Unlock()

	if synchronous {
		defer cancel()
		return x.run(j, req)
	}
	if x.icfg.features.HasFeature(FeatureFireOpenedAgainInAsyncMode) {
		x.fire(j, &Event{Type: EventReadyStateChange})
	}
	x.jobs.Add(1)
	go func() {
		defer x.jobs.Done()
		defer cancel()
		defer func() { // transport panics are handled by execute; this catches listeners'
			if p := recover(); p != nil {
				x.log.Warn("recovered panic in background job",
					zap.Uint64("job", j.id),
					zap.Any("panic", p),
					zap.ByteString("stack", debug.Stack()),
				)
			}
		}()
		x.run(j, req)
	}()
	return nil
}

// run performs the preflight (if required) and main round trips of req and
// drives the state transitions of x on behalf of j.
func (x *XMLHttpRequest) run(j *job, req *Request) error {
	if !x.owns(j) {
		return nil
	}
	icfg := x.icfg
	policy := icfg.policy
	if _, cors := req.Origin(); cors && policy.RequiresPreflight(req) {
		pre := policy.BuildPreflightRequest(req)
		x.log.Debug("sending preflight request",
			zap.String("url", req.URL.String()),
			zap.String("method", req.Method),
		)
		res, err := x.execute(j, pre)
		if err != nil {
			return x.fail(j, req, "preflight", err)
		}
		if !policy.IsPreflightAuthorized(res, req) {
			return x.fail(j, req, "preflight", nil)
		}
	}
	res, err := x.execute(j, req.clone())
	if err != nil {
		return x.fail(j, req, "transport", err)
	}
	if !policy.IsResponseAuthorized(res, req) {
		return x.fail(j, req, "cors", nil)
	}

	setResponse := func() { x.res = res }
	if !x.transition(j, HeadersReceived, setResponse) ||
		!x.transition(j, Loading, nil) ||
		!x.transition(j, Done, nil) {
		return nil
	}
	load := Event{
		Type:   EventLoad,
		Loaded: res.ContentLength(),
	}
	if icfg.features.HasFeature(FeatureLengthComputable) {
		load.LengthComputable = true
		load.Total = res.ContentLength()
	}
	x.fire(j, &load)
	return nil
}

// fail moves x to DONE (via HEADERS_RECEIVED) with a network-error response.
// In synchronous mode, it returns the corresponding error; in asynchronous
// mode, it fires an error event instead.
func (x *XMLHttpRequest) fail(j *job, req *Request, reason string, cause error) error {
	if !x.owns(j) { // aborted or reopened
		return nil
	}
	x.log.Debug("request failed",
		zap.String("url", req.URL.String()),
		zap.String("reason", reason),
		zap.Error(cause),
	)
	clearResponse := func() { x.res = nil }
	if !x.transition(j, HeadersReceived, clearResponse) ||
		!x.transition(j, Done, nil) {
		return nil
	}
	if j.async {
		x.fire(j, &Event{Type: EventError})
		return nil
	}
	return &xhrerrors.NetworkError{
		URL:    req.URL.String(),
		Reason: reason,
		Err:    cause,
	}
}

// owns reports whether j is the current, uncancelled job of x.
func (x *XMLHttpRequest) owns(j *job) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.ownsLocked(j)
}

// Precondition: x.mu is held.
func (x *XMLHttpRequest) ownsLocked(j *job) bool {
	return x.job == j && j.ctx.Err() == nil
}

// transition applies apply (if non-nil) and moves x to state to on behalf
// of j, then fires a readystatechange event if j is asynchronous or if to
// is DONE. It reports whether j still owned x.
func (x *XMLHttpRequest) transition(j *job, to ReadyState, apply func()) bool {
	x.mu.Lock()
	if !x.ownsLocked(j) {
		x.mu.Unlock()
		return false
	}
	if apply != nil {
		apply()
	}
	x.state = to
	x.mu.Unlock()
	if j.async || to == Done {
		x.emit(&Event{Type: EventReadyStateChange}, j.live(x))
	}
	return true
}

// fire emits ev on behalf of j, unless j no longer owns x.
func (x *XMLHttpRequest) fire(j *job, ev *Event) {
	if x.owns(j) {
		x.emit(ev, j.live(x))
	}
}

// live returns the predicate that stops the delivery of j's events
// to the remaining listeners once j no longer owns x.
func (j *job) live(x *XMLHttpRequest) func() bool {
	return func() bool { return x.owns(j) }
}

var errNoResponse = errors.New("transport returned neither a response nor an error")

// execute performs req on behalf of j. A panicking transport, or one that
// returns neither a response nor an error, yields a non-nil error.
func (x *XMLHttpRequest) execute(j *job, req *Request) (res *Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			x.log.Warn("recovered panic in transport",
				zap.Uint64("job", j.id),
				zap.Any("panic", p),
				zap.ByteString("stack", debug.Stack()),
			)
			res, err = nil, fmt.Errorf("transport panicked: %v", p)
		}
	}()
	res, err = x.icfg.transport.Execute(j.ctx, req)
	if err == nil && res == nil {
		err = errNoResponse
	}
	return res, err
}
