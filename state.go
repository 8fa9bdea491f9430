package xhr

import "strconv"

// A ReadyState is one of the five stages of the lifecycle of an
// [XMLHttpRequest]. Over one lifecycle (i.e. between two calls to
// [XMLHttpRequest.Open]), it only ever increases.
type ReadyState uint8

const (
	Unsent          ReadyState = iota // Open has not been called yet
	Opened                            // Open has been called
	HeadersReceived                   // the response status and headers are available
	Loading                           // the response body is being received
	Done                              // the request has completed or failed
)

var stateNames = [...]string{
	Unsent:          "UNSENT",
	Opened:          "OPENED",
	HeadersReceived: "HEADERS_RECEIVED",
	Loading:         "LOADING",
	Done:            "DONE",
}

func (s ReadyState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "ReadyState(" + strconv.Itoa(int(s)) + ")"
}
