package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/km-arc/go-injector/framework/validation"
)

// Request wraps *http.Request with input helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Input helpers ────────────────────────────────────────────────────────────

// Query returns a query-string value, or fallback when it is empty.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// All returns query and form input as a flat map.
func (req *Request) All() map[string]string {
	_ = req.raw.ParseForm()
	out := make(map[string]string, len(req.raw.Form))
	for k, v := range req.raw.Form {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// RouteParam returns a chi URL parameter.
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// RouteParamInt parses a chi URL parameter as a base 10 int64.
func (req *Request) RouteParamInt(key string) (int64, error) {
	v := req.RouteParam(key)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}

// ── Validation ───────────────────────────────────────────────────────────────

// Validate runs rules against input, which defaults to All().
//
//	v := req.Validate(validation.Rules{"file": "required"}, input)
//	if v.Fails() { res.ValidationError(v.Errors()) }
func (req *Request) Validate(rules validation.Rules, input ...map[string]string) *validation.Validator {
	data := req.All()
	if len(input) > 0 {
		data = input[0]
	}
	return validation.Make(data, rules)
}
