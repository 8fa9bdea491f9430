package xhr_test

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jub0bs/xhr"
)

func ExampleXMLHttpRequest() {
	// a canned transport that plays the part of https://api.example.org
	transport := xhr.TransportFunc(func(_ context.Context, req *xhr.Request) (*xhr.Response, error) {
		origin, _ := req.Origin()
		res := xhr.Response{
			StatusCode: http.StatusOK,
			Status:     "OK",
			Body:       []byte(`{"greeting":"hello"}`),
		}
		res.Header.Set("Content-Type", "application/json")
		res.Header.Set("Access-Control-Allow-Origin", origin)
		return &res, nil
	})

	x, err := xhr.New(xhr.Config{
		DocumentURL: "https://example.com/index.html",
		Transport:   transport,
	})
	if err != nil {
		log.Fatal(err)
	}
	x.AddEventListener(xhr.EventReadyStateChange, xhr.ListenerFunc(func(ev *xhr.Event) {
		fmt.Println("readystatechange:", ev.Target.ReadyState())
	}))
	x.AddEventListener(xhr.EventLoad, xhr.ListenerFunc(func(ev *xhr.Event) {
		fmt.Println("load:", ev.Target.Status(), ev.Target.ResponseText())
	}))

	if err := x.Open("GET", "https://api.example.org/greeting"); err != nil {
		log.Fatal(err)
	}
	if err := x.Send(nil); err != nil {
		log.Fatal(err)
	}
	x.Wait()
	// Output:
	// readystatechange: OPENED
	// readystatechange: HEADERS_RECEIVED
	// readystatechange: LOADING
	// readystatechange: DONE
	// load: 200 {"greeting":"hello"}
}

func ExampleXMLHttpRequest_Send_sync() {
	transport := xhr.TransportFunc(func(context.Context, *xhr.Request) (*xhr.Response, error) {
		return &xhr.Response{StatusCode: http.StatusOK, Status: "OK"}, nil // no CORS headers
	})
	x, err := xhr.New(xhr.Config{
		DocumentURL: "https://example.com/index.html",
		Transport:   transport,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := x.Open("GET", "https://api.example.org/secret", xhr.Async(false)); err != nil {
		log.Fatal(err)
	}
	err = x.Send(nil)
	fmt.Println(err)
	fmt.Println(x.ReadyState(), x.Status())
	// Output:
	// xhr: cors failure for "https://api.example.org/secret"
	// DONE 0
}
