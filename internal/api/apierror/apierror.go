// Package apierror normalizes failed API responses into a single typed error
// shape. A transport failure whose body decodes into the recognized error
// payload becomes an *APIError; everything else passes through unchanged so
// callers never see a partially-classified failure.
package apierror

import (
	"encoding/json"
	"errors"

	"github.com/vietddude/storekit/internal/api/transport"
)

// Field names the JSON key holding the server's error message. Deployments
// use exactly one of the two; the choice is fixed in configuration and must
// match the backend the client talks to.
type Field string

const (
	FieldMessage Field = "message"
	FieldDetail  Field = "detail"
)

// ParseField validates a configured field name, defaulting to "message".
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldMessage, FieldDetail:
		return Field(s), nil
	case "":
		return FieldMessage, nil
	}
	return "", errors.New("error_field must be \"message\" or \"detail\"")
}

// Payload is a decoded recognized error body.
type Payload struct {
	Message string
	Raw     map[string]any
}

// Decode attempts the tagged decode of an error body. It succeeds only for a
// JSON object whose field key holds a string; arrays, null, scalars,
// non-JSON bodies, and objects missing the key all fail.
func Decode(body []byte, field Field) (*Payload, bool) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, false
	}
	// json.Unmarshal accepts a bare null without error
	if obj == nil {
		return nil, false
	}
	msg, ok := obj[string(field)].(string)
	if !ok {
		return nil, false
	}
	return &Payload{Message: msg, Raw: obj}, true
}

// APIError is a recognized structured error from the server. It is
// constructed once at classification time and immutable thereafter.
type APIError struct {
	Message string
	Status  int
	Payload *Payload

	cause error
}

func (e *APIError) Error() string { return e.Message }

// Unwrap exposes the original transport failure for diagnostics.
func (e *APIError) Unwrap() error { return e.cause }

// Classify inspects a failed request result. Transport failures carrying a
// recognized error body become an *APIError; any other failure (network
// error, unrecognized body, non-transport error) is returned unchanged.
func Classify(err error, field Field) error {
	if err == nil {
		return nil
	}

	var herr *transport.Error
	if !errors.As(err, &herr) {
		return err
	}

	payload, ok := Decode(herr.Body, field)
	if !ok {
		return err
	}

	return &APIError{
		Message: payload.Message,
		Status:  herr.Status,
		Payload: payload,
		cause:   err,
	}
}
