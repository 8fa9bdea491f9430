package xhr

import (
	"slices"
	"strings"
)

// A Header is a single header field.
type Header struct {
	Name  string
	Value string
}

// A HeaderList is an ordered list of header fields.
// Name lookups are case-insensitive.
type HeaderList []Header

// Get returns the value of the first field named name, and whether
// such a field exists.
func (h HeaderList) Get(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns the values of all fields named name, in order.
func (h HeaderList) Values(name string) []string {
	var vs []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			vs = append(vs, f.Value)
		}
	}
	return vs
}

// Set sets the value of the field named name to value. If such a field
// already exists, it is replaced in place (last write wins) and any other
// field of that name is removed; otherwise, a new field is appended.
func (h *HeaderList) Set(name, value string) {
	i := slices.IndexFunc(*h, func(f Header) bool {
		return strings.EqualFold(f.Name, name)
	})
	if i < 0 {
		*h = append(*h, Header{Name: name, Value: value})
		return
	}
	(*h)[i] = Header{Name: name, Value: value}
	tail := slices.DeleteFunc((*h)[i+1:], func(f Header) bool {
		return strings.EqualFold(f.Name, name)
	})
	*h = (*h)[:i+1+len(tail)]
}

// Add appends a field, regardless of existing fields of the same name.
func (h *HeaderList) Add(name, value string) {
	*h = append(*h, Header{Name: name, Value: value})
}

// Del removes all fields named name.
func (h *HeaderList) Del(name string) {
	*h = slices.DeleteFunc(*h, func(f Header) bool {
		return strings.EqualFold(f.Name, name)
	})
}

// Clone returns a copy of h.
func (h HeaderList) Clone() HeaderList {
	return slices.Clone(h)
}
