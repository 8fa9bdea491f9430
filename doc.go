/*
Package xhr provides a headless emulation of the browser's [XMLHttpRequest]
object, for use by Go programs that host scripts on behalf of a document
(crawlers, test harnesses, headless browsers).

An [XMLHttpRequest] enforces the rules that browsers enforce:

  - Requests may only be configured in the OPENED state, and
    [forbidden request headers] (Cookie, Host, Sec-*, Proxy-*, etc.)
    are silently dropped.
  - Requests whose target is not same-origin with the document carry an
    Origin header and are subject to the [CORS protocol]: a response is only
    exposed if its Access-Control-Allow-Origin header (and, for credentialed
    requests, its Access-Control-Allow-Credentials header) allows it.
  - Cross-origin requests that are not [simple requests] are preceded by a
    [CORS-preflight request], and are only sent if the preflight response
    allows the request's origin and headers. Note that, contrary to the
    Fetch standard, the Access-Control-Allow-Methods header of preflight
    responses is not enforced.
  - The readyState of the object only ever increases over one lifecycle,
    and every lifecycle that reaches the network ends in the DONE state,
    whether the request succeeds or fails.

Behaviors on which browsers historically disagree are governed by
compatibility toggles (see the Feature* constants), which a host enables
by means of a [Features] implementation such as [FeatureSet].

The actual network round trips are delegated to a [Transport];
[HTTPTransport] is backed by [net/http].

[CORS protocol]: https://fetch.spec.whatwg.org/#http-cors-protocol
[CORS-preflight request]: https://developer.mozilla.org/en-US/docs/Glossary/Preflight_request
[XMLHttpRequest]: https://developer.mozilla.org/en-US/docs/Web/API/XMLHttpRequest
[forbidden request headers]: https://developer.mozilla.org/en-US/docs/Glossary/Forbidden_header_name
[simple requests]: https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS#simple_requests
*/
package xhr
