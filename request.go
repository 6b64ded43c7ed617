package chatbridge

// Request is a provider-agnostic request descriptor. Endpoint is relative to
// the adapter's base URL and may carry an encoded query string.
type Request struct {
	Method   string
	Endpoint string
	Headers  map[string]string
	Body     []byte
}

// Response is the normalized result of one upstream call. Header keys are
// lowercased by the adapters.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Data       []byte
}

// Header returns the named response header, or "" when absent. Name must be
// lowercase.
func (r *Response) Header(name string) string {
	if r == nil || r.Headers == nil {
		return ""
	}
	return r.Headers[name]
}
