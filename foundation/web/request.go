package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/babybtc/quantlab/foundation/validate"
	"github.com/dimfeld/httptreemux/v5"
)

// Param returns the web call parameters from the request.
func Param(r *http.Request, key string) string {
	m := httptreemux.ContextParams(r.Context())
	return m[key]
}

// Query returns the named query string value from the request.
func Query(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}

// QueryInt returns the named query string value as an int. When the value
// is missing the default is returned.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, validate.FieldErrors{{Field: key, Error: fmt.Sprintf("%s must be an integer", key)}}
	}

	return n, nil
}

// QueryFloat returns the named query string value as a float64. The value
// is required and must be finite.
func QueryFloat(r *http.Request, key string) (float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, validate.FieldErrors{{Field: key, Error: fmt.Sprintf("%s is a required field", key)}}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, validate.FieldErrors{{Field: key, Error: fmt.Sprintf("%s must be a number", key)}}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, validate.FieldErrors{{Field: key, Error: fmt.Sprintf("%s must be a finite number", key)}}
	}

	return f, nil
}

// Decode reads the body of an HTTP request looking for a JSON document. The
// body is decoded into the provided value.
//
// If the provided value is a struct then it is checked for validation tags.
// Unknown fields are ignored.
// An empty body decodes as an empty document.
func Decode(r *http.Request, val any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(val); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if err := validate.Check(val); err != nil {
		return err
	}

	return nil
}
