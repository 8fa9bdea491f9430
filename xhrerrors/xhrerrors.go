/*
Package xhrerrors provides the error types returned by the methods of
[github.com/jub0bs/xhr.XMLHttpRequest].

Callers that need to tell one category of failure from another should
rely on [errors.As]:

	var nerr *xhrerrors.NetworkError
	if errors.As(err, &nerr) {
		// the request failed at the transport or CORS level
	}
*/
package xhrerrors

import "fmt"

// An InvalidStateError indicates a method call or a property assignment
// that the current state of the object does not allow, e.g. setting a
// request header before open, or overriding the MIME type once the
// response headers have been received.
// No state transition accompanies such an error.
type InvalidStateError struct {
	Op     string // the offending operation, e.g. "setRequestHeader"
	Reason string // human-readable explanation
}

func (err *InvalidStateError) Error() string {
	const tmpl = "xhr: invalid state for %s: %s"
	return fmt.Sprintf(tmpl, err.Op, err.Reason)
}

// A SecurityError indicates that open was called with a target URL that
// the active origin policy forbids accessing.
type SecurityError struct {
	URL string // the offending (resolved) URL
}

func (err *SecurityError) Error() string {
	const tmpl = "xhr: access to %q is denied by the origin policy"
	return fmt.Sprintf(tmpl, err.URL)
}

// A SyntaxError indicates that open was passed a URL that is empty
// or cannot be parsed.
// The Reason field may take one of two values:
//   - "empty": the URL is empty (or blank);
//   - "invalid": the URL cannot be parsed or resolved.
type SyntaxError struct {
	Value  string // the unacceptable value that was specified
	Reason string // empty | invalid
}

func (err *SyntaxError) Error() string {
	if err.Reason == "empty" {
		return "xhr: URL for open cannot be empty"
	}
	const tmpl = "xhr: %s URL %q"
	return fmt.Sprintf(tmpl, err.Reason, err.Value)
}

// A NetworkError indicates that a request could not be completed.
// The Reason field may take one of three values:
//   - "transport": the transport failed to perform the request;
//   - "preflight": the CORS-preflight request failed or was not authorized;
//   - "cors": the response failed the CORS check.
//
// Only synchronous sends return NetworkErrors; asynchronous ones
// report them through an "error" event.
type NetworkError struct {
	URL    string // the URL of the failed request
	Reason string // transport | preflight | cors
	Err    error  // the underlying transport error, if any
}

func (err *NetworkError) Error() string {
	const tmpl = "xhr: %s failure for %q"
	msg := fmt.Sprintf(tmpl, err.Reason, err.URL)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *NetworkError) Unwrap() error {
	return err.Err
}
