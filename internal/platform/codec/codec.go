// Package codec decodifica las entidades del API de forma estricta.
//
// Un campo es obligatorio en el wire salvo que sea puntero o que su tag json
// tenga omitempty. Las restricciones de valor se declaran con tags `validate`.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotObject = errors.New("codec: expected a JSON object")
)

// MissingFieldError indica una key obligatoria ausente o en null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("codec: missing required field %q", e.Field)
}

// ValidationError indica un valor que no cumple su regla `validate`.
type ValidationError struct {
	Field string
	Rule  string
	Param string
}

func (e *ValidationError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("codec: field %q fails %s", e.Field, e.Rule)
	}
	return fmt.Sprintf("codec: field %q fails %s=%s", e.Field, e.Rule, e.Param)
}

var (
	validate = newValidator()
	required sync.Map // reflect.Type -> []string
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar errores con el nombre del wire, no el del struct.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Decode exige las keys obligatorias de v, decodifica y valida.
// v debe ser un puntero a struct sin UnmarshalJSON propio (usar un tipo alias).
func Decode(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.New("codec: target must be a non-nil pointer to struct")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return ErrNotObject
	}

	for _, name := range requiredFields(rv.Elem().Type()) {
		val, ok := raw[name]
		if !ok || bytes.Equal(bytes.TrimSpace(val), []byte("null")) {
			return &MissingFieldError{Field: name}
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	return Validate(v)
}

// Validate aplica los tags `validate` de un struct (o puntero a struct).
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		}
	}
	return err
}

func requiredFields(t reflect.Type) []string {
	if cached, ok := required.Load(t); ok {
		return cached.([]string)
	}

	out := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" && opts == "" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if f.Type.Kind() == reflect.Pointer || hasOption(opts, "omitempty") || hasOption(opts, "omitzero") {
			continue
		}
		out = append(out, name)
	}

	required.Store(t, out)
	return out
}

func hasOption(opts, want string) bool {
	for _, o := range strings.Split(opts, ",") {
		if o == want {
			return true
		}
	}
	return false
}
