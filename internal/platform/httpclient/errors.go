package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind es el conjunto cerrado de fallas que reporta el cliente.
type Kind int

const (
	KindInvalidAddress Kind = iota + 1
	KindInvalidResponse
	KindHTTP
	KindDecoding
	KindNetwork
)

var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidResponse = errors.New("invalid response")
	ErrHTTP            = errors.New("http error")
	ErrDecoding        = errors.New("decoding error")
	ErrNetwork         = errors.New("network error")
)

func (k Kind) String() string {
	switch k {
	case KindInvalidAddress:
		return "InvalidAddress"
	case KindInvalidResponse:
		return "InvalidResponse"
	case KindHTTP:
		return "HttpError"
	case KindDecoding:
		return "DecodingError"
	case KindNetwork:
		return "NetworkError"
	default:
		return "Unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidAddress:
		return ErrInvalidAddress
	case KindInvalidResponse:
		return ErrInvalidResponse
	case KindHTTP:
		return ErrHTTP
	case KindDecoding:
		return ErrDecoding
	case KindNetwork:
		return ErrNetwork
	default:
		return nil
	}
}

// Error es la única forma de error que devuelve Client.Do.
// errors.Is(err, ErrHTTP) etc. identifica el Kind; Unwrap expone la causa.
type Error struct {
	Kind     Kind
	Method   string
	Endpoint string

	// Solo para KindHTTP. Body es texto crudo para diagnóstico, no se interpreta.
	StatusCode int
	Body       string

	Err error
}

func (e *Error) Error() string {
	prefix := fmt.Sprintf("httpclient: %s %s", e.Method, e.Endpoint)
	if e.Kind == KindHTTP {
		if e.Body == "" {
			return fmt.Sprintf("%s: http error: status=%d", prefix, e.StatusCode)
		}
		return fmt.Sprintf("%s: http error: status=%d body=%s", prefix, e.StatusCode, truncate(e.Body, 256))
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", prefix, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %v: %v", prefix, e.Kind.sentinel(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf devuelve el Kind de err, o 0 si no viene del cliente.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// StatusCode devuelve el status de un HttpError.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindHTTP {
		return e.StatusCode, true
	}
	return 0, false
}

// IsRetryable: fallas de red y 5xx. El cliente nunca reintenta por su cuenta;
// es información para quien llama.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindNetwork:
		return true
	case KindHTTP:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
