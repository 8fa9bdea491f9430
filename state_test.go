package xhr

import "testing"

func TestReadyStateString(t *testing.T) {
	cases := []struct {
		s    ReadyState
		want string
	}{
		{Unsent, "UNSENT"},
		{Opened, "OPENED"},
		{HeadersReceived, "HEADERS_RECEIVED"},
		{Loading, "LOADING"},
		{Done, "DONE"},
		{ReadyState(7), "ReadyState(7)"},
	}
	for _, tc := range cases {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("got %q; want %q", got, tc.want)
		}
	}
	if Done != 4 {
		t.Errorf("got DONE = %d; want 4", Done)
	}
}
