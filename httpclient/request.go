package httpclient

// Request describes a single HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, ...).
	Method string
	// Path is joined onto the client's base URL unless absolute.
	Path string
	// Headers are per-request headers, overriding client defaults.
	Headers map[string]string
	// Query are per-request query parameters, overriding client defaults.
	Query map[string]string
	// Body is JSON-encoded when non-nil.
	Body any
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}
