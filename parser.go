package xhr

import (
	"io"
	"mime"

	"golang.org/x/net/html"
)

// A DocumentParser is the collaborator that turns a completed response into
// a document tree for [XMLHttpRequest.ResponseXML].
// ParseDocument may return a nil document (and a nil error) for content
// types it does not handle.
type DocumentParser interface {
	ParseDocument(contentType string, r io.Reader) (any, error)
}

// HTMLParser is a [DocumentParser] that parses HTML and XML responses
// into a [*html.Node] tree with [html.Parse].
type HTMLParser struct{}

// ParseDocument parses r if contentType denotes an HTML or XML document.
func (HTMLParser) ParseDocument(contentType string, r io.Reader) (any, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, nil
	}
	switch mediaType {
	case "text/html",
		"application/xhtml+xml",
		"application/xml",
		"text/xml":
	default:
		return nil, nil
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
