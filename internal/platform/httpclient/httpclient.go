package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"myvet/internal/platform/logger"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 4 << 20

	// prefijo del body que se guarda en un HttpError
	errorBodyBytes = 16 << 10
)

type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

// Call describe un request relativo al BaseURL.
// - Method vacío => GET.
// - Params se serializa como body JSON para todo verbo distinto de GET (nil => sin body).
// - Headers se agregan sobre los defaults y sobre los del context.
type Call struct {
	Endpoint string
	Method   Method
	Params   any
	Headers  map[string]string
}

// Requester es lo único que necesitan los servicios de dominio.
type Requester interface {
	Do(ctx context.Context, call Call, out any) error
}

// Empty es el resultado de endpoints sin body (cancel, delete).
type Empty struct{}

// Request ejecuta call y decodifica la respuesta como T.
func Request[T any](ctx context.Context, r Requester, call Call) (T, error) {
	var out T
	if err := r.Do(ctx, call, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

type Config struct {
	BaseURL string
	Timeout time.Duration

	// Opcional: p.ej. para tests. nil => http.DefaultTransport (pool compartido).
	Transport http.RoundTripper

	Logger       logger.Logger
	MaxBodyBytes int64 // tope del body a decodificar; 0 => DefaultMaxBodyBytes
}

// Client es inmutable después de New y seguro para uso concurrente.
// No reintenta, no encola y no limita la tasa de requests.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
	maxBody int64
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := cfg.Transport
	if tr == nil {
		tr = http.DefaultTransport
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		log:     log.With(map[string]any{"component": "httpclient"}),
		maxBody: maxBody,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Do(ctx context.Context, call Call, out any) error {
	method := Method(strings.ToUpper(strings.TrimSpace(string(call.Method))))
	if method == "" {
		method = MethodGet
	}

	fail := func(kind Kind, err error) *Error {
		return &Error{Kind: kind, Method: string(method), Endpoint: call.Endpoint, Err: err}
	}

	fullURL, err := c.resolveURL(call.Endpoint)
	if err != nil {
		return fail(KindInvalidAddress, err)
	}

	var body io.Reader
	if hasParams(call.Params) && method != MethodGet {
		b, err := json.Marshal(call.Params)
		if err != nil {
			return fail(KindDecoding, fmt.Errorf("marshal params: %w", err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), fullURL, body)
	if err != nil {
		return fail(KindInvalidAddress, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	setHeaders(req.Header, headersFrom(ctx))
	setHeaders(req.Header, call.Headers)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		e := fail(KindNetwork, err)
		c.log.Warn("request failed", map[string]any{"method": method, "endpoint": call.Endpoint, "error": err})
		return e
	}
	if resp == nil {
		return fail(KindInvalidResponse, errors.New("nil response"))
	}
	defer resp.Body.Close()

	fields := map[string]any{
		"method":      method,
		"endpoint":    call.Endpoint,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}

	// El status manda: un no-2xx es HttpError aunque el body sea grande o no se pueda leer.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("non-2xx response", fields)
		prefix, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyBytes))
		return &Error{
			Kind:       KindHTTP,
			Method:     string(method),
			Endpoint:   call.Endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(prefix)),
		}
	}
	c.log.Debug("request done", fields)

	if out == nil {
		return nil
	}
	if _, ok := out.(*Empty); ok {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return fail(KindNetwork, fmt.Errorf("read body: %w", err))
	}
	if int64(len(raw)) > c.maxBody {
		return fail(KindInvalidResponse, fmt.Errorf("body exceeds %d bytes", c.maxBody))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fail(KindDecoding, err)
	}
	return nil
}

func (c *Client) resolveURL(endpoint string) (string, error) {
	if strings.TrimSpace(endpoint) == "" {
		return "", errors.New("empty endpoint")
	}
	if c.baseURL == "" {
		return "", errors.New("base url not configured")
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	full := c.baseURL + endpoint
	u, err := url.ParseRequestURI(full)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}
	return full, nil
}

// hasParams: un puntero, map o slice nil cuenta como "sin params".
func hasParams(p any) bool {
	if p == nil {
		return false
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return !v.IsNil()
	}
	return true
}

func setHeaders(h http.Header, extra map[string]string) {
	for k, v := range extra {
		if strings.TrimSpace(k) == "" {
			continue
		}
		h.Set(k, v)
	}
}
