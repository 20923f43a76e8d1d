package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error categories echoed in JSON error bodies.
const (
	CategoryValidation  = "validation_error"
	CategoryNotFound    = "not_found"
	CategoryUpstream    = "upstream_error"
	CategoryUnavailable = "service_unavailable"
	CategorySignature   = "signature_error"
	CategoryProcessor   = "payment_processor_error"
	CategoryInternal    = "server_error"
)

// ValidationError reports missing or malformed client input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return "invalid " + e.Field
	}
	return "validation error"
}

// MissingField builds the ValidationError returned for an absent required field.
func MissingField(field string) *ValidationError {
	return &ValidationError{Msg: "Missing required field: " + field, Field: field}
}

// NotFoundError reports an unknown resource id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}

// UpstreamError wraps a failure of the data store or another collaborator.
// Unavailable marks the store as unreachable rather than failing.
type UpstreamError struct {
	Service     string
	Unavailable bool
	Err         error
}

func (e *UpstreamError) Error() string {
	if e.Unavailable {
		return e.Service + " not available"
	}
	if e.Err == nil {
		return e.Service + " error"
	}
	return fmt.Sprintf("%s error: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// SignatureError rejects a webhook whose signature or payload cannot be trusted.
type SignatureError struct {
	Msg string
	Err error
}

func (e *SignatureError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "Invalid signature"
}

func (e *SignatureError) Unwrap() error { return e.Err }

// ProcessorError is an error reported by the payment processor itself.
type ProcessorError struct {
	Code   string
	Msg    string
	Status int
	Err    error
}

func (e *ProcessorError) Error() string {
	if e.Msg == "" {
		return "Payment processor error"
	}
	return "Payment processor error: " + e.Msg
}

func (e *ProcessorError) Unwrap() error { return e.Err }

// Classify maps err onto an HTTP status and a body category.
func Classify(err error) (int, string) {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		upstream   *UpstreamError
		signature  *SignatureError
		processor  *ProcessorError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, CategoryValidation
	case errors.As(err, &signature):
		return http.StatusBadRequest, CategorySignature
	case errors.As(err, &notFound):
		return http.StatusNotFound, CategoryNotFound
	case errors.As(err, &processor):
		// Card declines and bad requests are client-side; everything else is ours.
		if processor.Status >= 400 && processor.Status < 500 {
			return http.StatusBadRequest, CategoryProcessor
		}
		return http.StatusInternalServerError, CategoryProcessor
	case errors.As(err, &upstream):
		if upstream.Unavailable {
			return http.StatusServiceUnavailable, CategoryUnavailable
		}
		return http.StatusInternalServerError, CategoryUpstream
	}
	return http.StatusInternalServerError, CategoryInternal
}

// PublicMessage is the message safe to echo to clients for err.
func PublicMessage(err error) string {
	_, category := Classify(err)
	if category == CategoryInternal {
		return "Server error"
	}
	return err.Error()
}
