// Package testhelpers provides a small expectation-based mock for outbound
// HTTP. Activate installs it as the transport of http.DefaultClient; each
// expectation matches one request and is consumed by it.
package testhelpers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

type Expectation struct {
	Method string
	URL    *url.URL

	StatusCode int
	RespBody   []byte
	Headers    http.Header

	matched bool
}

type MockTransport struct {
	mutex        sync.Mutex
	expectations []*Expectation
}

var (
	DefaultTransport = &MockTransport{}

	saved http.RoundTripper
)

// New registers an expectation rooted at baseURL (scheme + host required).
func New(baseURL string) *Expectation {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		panic(fmt.Sprintf("httpmock: base URL must include scheme and host, got %q", baseURL))
	}

	exp := &Expectation{URL: u, Headers: make(http.Header)}

	DefaultTransport.mutex.Lock()
	DefaultTransport.expectations = append(DefaultTransport.expectations, exp)
	DefaultTransport.mutex.Unlock()

	return exp
}

// Get sets the expected method to GET and the expected path (optionally with
// a query string).
func (e *Expectation) Get(path string) *Expectation {
	u, err := url.Parse(path)
	if err != nil {
		panic(fmt.Sprintf("httpmock: invalid path %q: %v", path, err))
	}

	e.Method = http.MethodGet
	e.URL.Path = u.Path
	e.URL.RawQuery = u.RawQuery
	return e
}

func (e *Expectation) Reply(statusCode int) *Expectation {
	e.StatusCode = statusCode
	return e
}

func (e *Expectation) Body(body []byte) *Expectation {
	e.RespBody = body
	return e
}

func (e *Expectation) BodyString(body string) *Expectation {
	return e.Body([]byte(body))
}

func (e *Expectation) JSON(v interface{}) *Expectation {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("httpmock: failed to marshal JSON: %v", err))
	}
	e.Headers.Set("Content-Type", "application/json")
	return e.Body(data)
}

func (e *Expectation) Header(key, value string) *Expectation {
	e.Headers.Set(key, value)
	return e
}

// Activate swaps the transport of http.DefaultClient for the mock.
func Activate() {
	if http.DefaultClient.Transport == DefaultTransport {
		return
	}

	saved = http.DefaultClient.Transport
	http.DefaultClient.Transport = DefaultTransport
}

// Deactivate restores the original transport and drops all expectations.
func Deactivate() {
	http.DefaultClient.Transport = saved

	DefaultTransport.mutex.Lock()
	DefaultTransport.expectations = nil
	DefaultTransport.mutex.Unlock()
}

// IsDone reports whether every registered expectation has been consumed.
func IsDone() bool {
	DefaultTransport.mutex.Lock()
	defer DefaultTransport.mutex.Unlock()

	for _, exp := range DefaultTransport.expectations {
		if !exp.matched {
			return false
		}
	}
	return true
}

func (t *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	var reasons []string
	for _, exp := range t.expectations {
		if exp.matched {
			continue
		}

		reason := exp.mismatch(req)
		if reason == "" {
			exp.matched = true
			return exp.response(req), nil
		}
		reasons = append(reasons, reason)
	}

	extra := ""
	if len(reasons) > 0 {
		extra = " (" + strings.Join(reasons, "; ") + ")"
	}
	return nil, fmt.Errorf("httpmock: no match for %s %s%s", req.Method, req.URL, extra)
}

// mismatch returns "" when the request satisfies the expectation, otherwise a
// human-readable reason. Query keys not named by the expectation are ignored.
func (e *Expectation) mismatch(req *http.Request) string {
	if e.Method != "" && e.Method != req.Method {
		return fmt.Sprintf("method: expected %s got %s", e.Method, req.Method)
	}
	if e.URL.Scheme != req.URL.Scheme || e.URL.Host != req.URL.Host {
		return fmt.Sprintf("host: expected %s://%s got %s://%s", e.URL.Scheme, e.URL.Host, req.URL.Scheme, req.URL.Host)
	}
	if e.URL.Path != req.URL.Path {
		return fmt.Sprintf("path: expected %s got %s", e.URL.Path, req.URL.Path)
	}

	actual := req.URL.Query()
	for key, want := range e.URL.Query() {
		got, ok := actual[key]
		if !ok {
			return fmt.Sprintf("missing query key %s", key)
		}
		if len(got) != len(want) {
			return fmt.Sprintf("query %s: expected %v got %v", key, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				return fmt.Sprintf("query %s: expected %s got %s", key, want[i], got[i])
			}
		}
	}

	return ""
}

func (e *Expectation) response(req *http.Request) *http.Response {
	statusCode := e.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	return &http.Response{
		StatusCode:    statusCode,
		Body:          io.NopCloser(bytes.NewReader(e.RespBody)),
		Header:        e.Headers,
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		ContentLength: int64(len(e.RespBody)),
	}
}

// CreateMockZipArchive builds an in-memory zip holding a single file, for
// corpCode.xml and document.xml fixtures.
func CreateMockZipArchive(filename string, data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	f, err := zw.Create(filename)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(data); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
