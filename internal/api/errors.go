package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies request failures.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindStatus
	KindDecode
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error is a failed API request. Status is zero when no response was received.
type Error struct {
	Kind   Kind
	Status int
	Method string
	URL    string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind == KindStatus {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFound reports whether the API answered 404.
func (e *Error) NotFound() bool {
	return e != nil && e.Kind == KindStatus && e.Status == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
