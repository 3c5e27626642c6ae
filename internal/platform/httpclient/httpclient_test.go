package httpclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"myvet/internal/platform/httpclient"
)

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, errors.New("should not be called")
}

type echo struct {
	Method  string         `json:"method"`
	Path    string         `json:"path"`
	Query   string         `json:"query"`
	Body    map[string]any `json:"body"`
	HasBody bool           `json:"has_body"`
	Headers map[string]string
}

// echoServer responde con lo que recibió.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		out := echo{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.RawQuery,
			HasBody: len(raw) > 0,
			Headers: map[string]string{
				"Content-Type":  r.Header.Get("Content-Type"),
				"Accept":        r.Header.Get("Accept"),
				"Authorization": r.Header.Get("Authorization"),
				"X-Trace":       r.Header.Get("X-Trace"),
			},
		}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &out.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
}

func TestDo_InvalidAddressNeverHitsNetwork(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		endpoint string
	}{
		{"empty base", "", "/pets"},
		{"no scheme", "api.myvet.app/v1", "/pets"},
		{"ftp scheme", "ftp://api.myvet.app", "/pets"},
		{"empty endpoint", "https://api.myvet.app/v1", ""},
		{"spaces in host", "https://api my vet", "/pets"},
		{"bad escape", "https://api.myvet.app/v1", "/pets/%zz"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := &countingTransport{}
			c := httpclient.New(httpclient.Config{BaseURL: tc.base, Transport: tr})

			err := c.Do(context.Background(), httpclient.Call{Endpoint: tc.endpoint}, nil)
			if !errors.Is(err, httpclient.ErrInvalidAddress) {
				t.Fatalf("expected invalid address, got %v", err)
			}
			if httpclient.KindOf(err) != httpclient.KindInvalidAddress {
				t.Fatalf("expected KindInvalidAddress, got %v", httpclient.KindOf(err))
			}
			if n := tr.calls.Load(); n != 0 {
				t.Fatalf("expected no network calls, got %d", n)
			}
		})
	}
}

func TestDo_BodyAndMethod(t *testing.T) {
	ts := echoServer(t)
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL + "/v1/"})
	params := map[string]any{"name": "Luna", "age": 3.0}

	for _, m := range []httpclient.Method{httpclient.MethodPost, httpclient.MethodPut} {
		got, err := httpclient.Request[echo](context.Background(), c, httpclient.Call{
			Endpoint: "pets",
			Method:   m,
			Params:   params,
		})
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", m, err)
		}
		if got.Method != string(m) || got.Path != "/v1/pets" {
			t.Fatalf("%s: unexpected request line %s %s", m, got.Method, got.Path)
		}
		if len(got.Body) != len(params) || got.Body["name"] != "Luna" || got.Body["age"] != 3.0 {
			t.Fatalf("%s: body mismatch: %#v", m, got.Body)
		}
	}

	// GET nunca manda body, aunque haya params.
	got, err := httpclient.Request[echo](context.Background(), c, httpclient.Call{
		Endpoint: "/pets?type=dog",
		Params:   params,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Method != http.MethodGet || got.HasBody {
		t.Fatalf("expected GET without body, got %s has_body=%v", got.Method, got.HasBody)
	}
	if got.Query != "type=dog" {
		t.Fatalf("expected query preserved, got %q", got.Query)
	}

	// POST sin params => sin body.
	got, err = httpclient.Request[echo](context.Background(), c, httpclient.Call{
		Endpoint: "/appointments/a1/cancel",
		Method:   httpclient.MethodPost,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.HasBody {
		t.Fatalf("expected no body for nil params")
	}

	// Un puntero o map nil tipado tampoco manda body.
	for name, p := range map[string]any{
		"nil pointer": (*struct{ A int })(nil),
		"nil map":     map[string]any(nil),
	} {
		got, err = httpclient.Request[echo](context.Background(), c, httpclient.Call{
			Endpoint: "/appointments/a1/cancel",
			Method:   httpclient.MethodPost,
			Params:   p,
		})
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", name, err)
		}
		if got.HasBody {
			t.Fatalf("%s: expected no body", name)
		}
	}
}

func TestDo_Headers(t *testing.T) {
	ts := echoServer(t)
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL})

	ctx := httpclient.ContextWithHeaders(context.Background(), httpclient.BearerAuth("tok-1"))
	ctx = httpclient.ContextWithHeaders(ctx, map[string]string{"X-Trace": "ctx"})

	got, err := httpclient.Request[echo](ctx, c, httpclient.Call{
		Endpoint: "/users/u1",
		Headers:  map[string]string{"X-Trace": "call"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Headers["Content-Type"] != "application/json" || got.Headers["Accept"] != "application/json" {
		t.Fatalf("missing default headers: %#v", got.Headers)
	}
	if got.Headers["Authorization"] != "Bearer tok-1" {
		t.Fatalf("expected bearer from context, got %q", got.Headers["Authorization"])
	}
	if got.Headers["X-Trace"] != "call" {
		t.Fatalf("expected call header to win, got %q", got.Headers["X-Trace"])
	}
}

func TestDo_StatusCodes(t *testing.T) {
	var status atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL})

	for _, code := range []int{200, 201, 202, 299} {
		status.Store(int32(code))
		if err := c.Do(context.Background(), httpclient.Call{Endpoint: "/x"}, nil); err != nil {
			t.Fatalf("status %d: unexpected err: %v", code, err)
		}
	}

	for _, code := range []int{300, 400, 401, 404, 409, 500, 503} {
		status.Store(int32(code))
		err := c.Do(context.Background(), httpclient.Call{Endpoint: "/x"}, nil)
		if !errors.Is(err, httpclient.ErrHTTP) {
			t.Fatalf("status %d: expected http error, got %v", code, err)
		}
		got, ok := httpclient.StatusCode(err)
		if !ok || got != code {
			t.Fatalf("status %d: got %d ok=%v", code, got, ok)
		}
		var e *httpclient.Error
		if !errors.As(err, &e) || e.Body != `{"error":"nope"}` {
			t.Fatalf("status %d: expected raw body kept, got %#v", code, e)
		}
		if httpclient.IsRetryable(err) != (code >= 500) {
			t.Fatalf("status %d: unexpected retryable=%v", code, httpclient.IsRetryable(err))
		}
	}
}

func TestDo_DecodingError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL})

	var out struct {
		ID string `json:"id"`
	}
	err := c.Do(context.Background(), httpclient.Call{Endpoint: "/x"}, &out)
	if !errors.Is(err, httpclient.ErrDecoding) {
		t.Fatalf("expected decoding error, got %v", err)
	}
	if httpclient.IsRetryable(err) {
		t.Fatalf("decoding errors are not retryable")
	}
}

func TestDo_UnmarshalableParams(t *testing.T) {
	tr := &countingTransport{}
	c := httpclient.New(httpclient.Config{BaseURL: "https://api.myvet.app/v1", Transport: tr})

	err := c.Do(context.Background(), httpclient.Call{
		Endpoint: "/pets",
		Method:   httpclient.MethodPost,
		Params:   map[string]any{"bad": make(chan int)},
	}, nil)
	if !errors.Is(err, httpclient.ErrDecoding) {
		t.Fatalf("expected decoding error, got %v", err)
	}
	if tr.calls.Load() != 0 {
		t.Fatalf("expected no network calls")
	}
}

func TestDo_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := ts.URL
	ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: base})
	err := c.Do(context.Background(), httpclient.Call{Endpoint: "/x"}, nil)
	if !errors.Is(err, httpclient.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !httpclient.IsRetryable(err) {
		t.Fatalf("network errors should be retryable")
	}
	var e *httpclient.Error
	if !errors.As(err, &e) || e.Unwrap() == nil {
		t.Fatalf("expected underlying cause")
	}
}

func TestDo_CanceledContext(t *testing.T) {
	ts := echoServer(t)
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Do(ctx, httpclient.Call{Endpoint: "/x"}, nil)
	if !errors.Is(err, httpclient.ErrNetwork) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected network error wrapping context.Canceled, got %v", err)
	}
}

func TestDo_EmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL})
	if _, err := httpclient.Request[httpclient.Empty](context.Background(), c, httpclient.Call{
		Endpoint: "/pets/p1",
		Method:   httpclient.MethodDelete,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestDo_BodyTooLarge(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"` + strings.Repeat("a", 64) + `"`))
	}))
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL, MaxBodyBytes: 16})
	var out string
	err := c.Do(context.Background(), httpclient.Call{Endpoint: "/x"}, &out)
	if !errors.Is(err, httpclient.ErrInvalidResponse) {
		t.Fatalf("expected invalid response, got %v", err)
	}
}

func TestDo_LargeErrorBodyKeepsStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL, MaxBodyBytes: 1024})
	var out map[string]any
	err := c.Do(context.Background(), httpclient.Call{Endpoint: "/x"}, &out)
	if !errors.Is(err, httpclient.ErrHTTP) {
		t.Fatalf("expected http error, got %v", err)
	}
	if code, ok := httpclient.StatusCode(err); !ok || code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d ok=%v", code, ok)
	}
	var e *httpclient.Error
	if !errors.As(err, &e) || !strings.HasPrefix(e.Body, "xxxx") {
		t.Fatalf("expected body prefix kept, got %+v", e)
	}
}

func TestDo_EmptyIgnoresLargeBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 256)))
	}))
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL, MaxBodyBytes: 16})
	if _, err := httpclient.Request[httpclient.Empty](context.Background(), c, httpclient.Call{
		Endpoint: "/appointments/a1/cancel",
		Method:   httpclient.MethodPost,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := c.Do(context.Background(), httpclient.Call{Endpoint: "/x"}, nil); err != nil {
		t.Fatalf("nil out: unexpected err: %v", err)
	}
}

// Cada handler espera a que lleguen los n requests: solo pasa si el cliente
// no los encola.
func TestDo_ConcurrentCallsAreInFlightTogether(t *testing.T) {
	const n = 8

	var arrived sync.WaitGroup
	arrived.Add(n)
	all := make(chan struct{})
	go func() {
		arrived.Wait()
		close(all)
	}()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived.Done()
		select {
		case <-all:
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusGatewayTimeout)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	defer ts.Close()

	c := httpclient.New(httpclient.Config{BaseURL: ts.URL, Timeout: 10 * time.Second})

	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			got, err := httpclient.Request[echo](context.Background(), c, httpclient.Call{
				Endpoint: fmt.Sprintf("/pets/p%d", i),
			})
			if err == nil && got.Path != fmt.Sprintf("/pets/p%d", i) {
				err = fmt.Errorf("call %d got path %q", i, got.Path)
			}
			errs <- err
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("concurrent call failed: %v", err)
		}
	}
}

func TestError_Message(t *testing.T) {
	err := &httpclient.Error{
		Kind:       httpclient.KindHTTP,
		Method:     "GET",
		Endpoint:   "/pets/p1",
		StatusCode: 404,
		Body:       "not found",
	}
	if !strings.Contains(err.Error(), "status=404") || !strings.Contains(err.Error(), "/pets/p1") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if httpclient.KindOf(errors.New("other")) != 0 {
		t.Fatalf("foreign errors have no kind")
	}
	if httpclient.KindHTTP.String() != "HttpError" {
		t.Fatalf("unexpected kind name %s", httpclient.KindHTTP)
	}
}
