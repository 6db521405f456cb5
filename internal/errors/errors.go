// Package errors defines the error taxonomy of the homework status bot.
// Every failure a poll cycle can hit carries a code so the loop boundary
// can decide whether it is fatal, reportable, or log-only.
package errors

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown           = "UNKNOWN"
	CodeConfig            = "CONFIG"
	CodeTransport         = "TRANSPORT"
	CodeUnexpectedStatus  = "UNEXPECTED_STATUS"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeMissingField      = "MISSING_FIELD"
	CodeUnknownStatus     = "UNKNOWN_STATUS"
	CodeDelivery          = "DELIVERY"
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of err if it is an ApplicationError,
// or CodeUnknown if it doesn't.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// Specific error types and constructors

// ConfigError reports a missing or invalid startup configuration value.
// It is the only error kind that terminates the process.
type ConfigError struct {
	base Error
}

func (e *ConfigError) Error() string {
	return e.base.Error()
}

func (e *ConfigError) Code() string {
	return e.base.Code()
}

func (e *ConfigError) Unwrap() error {
	return e.base.Unwrap()
}

func NewConfigError(message string, cause error) error {
	return &ConfigError{
		base: Error{
			code:    CodeConfig,
			message: message,
			err:     cause,
		},
	}
}

// TransportError reports a network call that could not complete at all
// (DNS, connection, timeout).
type TransportError struct {
	base Error
}

func (e *TransportError) Error() string {
	return e.base.Error()
}

func (e *TransportError) Code() string {
	return e.base.Code()
}

func (e *TransportError) Unwrap() error {
	return e.base.Unwrap()
}

func NewTransportError(message string, cause error) error {
	return &TransportError{
		base: Error{
			code:    CodeTransport,
			message: message,
			err:     cause,
		},
	}
}

// UnexpectedStatusError reports a non-200 HTTP status from the homework API.
// The raw status is carried in the message only; 4xx and 5xx are not
// treated differently.
type UnexpectedStatusError struct {
	base Error
}

func (e *UnexpectedStatusError) Error() string {
	return e.base.Error()
}

func (e *UnexpectedStatusError) Code() string {
	return e.base.Code()
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.base.Unwrap()
}

func NewUnexpectedStatusError(message string) error {
	return &UnexpectedStatusError{
		base: Error{
			code:    CodeUnexpectedStatus,
			message: message,
		},
	}
}

// MalformedResponseError reports an API response body that does not match
// the documented shape.
type MalformedResponseError struct {
	base Error
}

func (e *MalformedResponseError) Error() string {
	return e.base.Error()
}

func (e *MalformedResponseError) Code() string {
	return e.base.Code()
}

func (e *MalformedResponseError) Unwrap() error {
	return e.base.Unwrap()
}

func NewMalformedResponseError(message string, cause error) error {
	return &MalformedResponseError{
		base: Error{
			code:    CodeMalformedResponse,
			message: message,
			err:     cause,
		},
	}
}

// MissingFieldError reports a homework record without a required field.
type MissingFieldError struct {
	base Error
}

func (e *MissingFieldError) Error() string {
	return e.base.Error()
}

func (e *MissingFieldError) Code() string {
	return e.base.Code()
}

func (e *MissingFieldError) Unwrap() error {
	return e.base.Unwrap()
}

func NewMissingFieldError(message string) error {
	return &MissingFieldError{
		base: Error{
			code:    CodeMissingField,
			message: message,
		},
	}
}

// UnknownStatusError reports a homework status absent from the verdict
// table. An unrecognized status is evidence of an API contract change and
// is surfaced, never passed through.
type UnknownStatusError struct {
	base Error
}

func (e *UnknownStatusError) Error() string {
	return e.base.Error()
}

func (e *UnknownStatusError) Code() string {
	return e.base.Code()
}

func (e *UnknownStatusError) Unwrap() error {
	return e.base.Unwrap()
}

func NewUnknownStatusError(message string) error {
	return &UnknownStatusError{
		base: Error{
			code:    CodeUnknownStatus,
			message: message,
		},
	}
}

// DeliveryError reports a failed Telegram send. The loop only logs it:
// a failed report must never produce a report about itself.
type DeliveryError struct {
	base Error
}

func (e *DeliveryError) Error() string {
	return e.base.Error()
}

func (e *DeliveryError) Code() string {
	return e.base.Code()
}

func (e *DeliveryError) Unwrap() error {
	return e.base.Unwrap()
}

func NewDeliveryError(message string, cause error) error {
	return &DeliveryError{
		base: Error{
			code:    CodeDelivery,
			message: message,
			err:     cause,
		},
	}
}
