package xhr

import (
	"slices"
	"sync"
)

// Event types fired by an [XMLHttpRequest].
const (
	EventReadyStateChange = "readystatechange"
	EventLoad             = "load"
	EventError            = "error"
)

// An Event is the argument passed to listeners.
// The LengthComputable, Loaded, and Total fields are only meaningful
// for progress events (load and error).
type Event struct {
	Type   string
	Target *XMLHttpRequest

	LengthComputable bool
	Loaded           int64
	Total            int64
}

// A Listener is anything that can be notified of an [Event].
type Listener interface {
	HandleEvent(ev *Event)
}

// The ListenerFunc type is an adapter to allow the use of ordinary
// functions as listeners.
type ListenerFunc func(ev *Event)

// HandleEvent calls f(ev).
func (f ListenerFunc) HandleEvent(ev *Event) {
	f(ev)
}

// An emitter is an ordered registry of listeners, keyed by event type.
// The zero value is ready to use.
type emitter struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[string][]registration
}

type registration struct {
	id uint64
	l  Listener
}

// add registers l for events of type typ and returns a function that
// unregisters it.
func (e *emitter) add(typ string, l Listener) (remove func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]registration)
	}
	e.nextID++
	id := e.nextID
	e.listeners[typ] = append(e.listeners[typ], registration{id: id, l: l})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.listeners[typ] = slices.DeleteFunc(e.listeners[typ], func(r registration) bool {
			return r.id == id
		})
	}
}

// emit invokes, in registration order, every listener registered for
// ev.Type at the time of the call. If live is non-nil, it is consulted
// before each invocation and delivery stops as soon as it reports false.
// Listeners run without e's lock held, so they may (un)register listeners.
func (e *emitter) emit(ev *Event, live func() bool) {
	e.mu.Lock()
	regs := slices.Clone(e.listeners[ev.Type])
	e.mu.Unlock()
	for _, r := range regs {
		if live != nil && !live() {
			return
		}
		r.l.HandleEvent(ev)
	}
}
