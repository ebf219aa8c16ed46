package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps the size of a decoded request body
const MaxBodyBytes = 1 << 20

// ErrInvalidBody is returned when the body is not a single well-typed JSON value
var ErrInvalidBody = errors.New("invalid request body")

var validate = validator.New()

// ValidateRequest validates a struct against its validate tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeJSON decodes a single JSON value from the request body into v. An
// empty body leaves v untouched. Any syntax or type error is reported as
// ErrInvalidBody.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON value", ErrInvalidBody)
	}

	return nil
}

// DecodeAndValidate decodes the JSON request body and validates it
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := DecodeJSON(w, r, v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// IsValidationError reports whether err came from tag validation
func IsValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// MissingFields lists the JSON names of fields that failed validation
func MissingFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return fields
}

func init() {
	// Report fields by their JSON name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}
