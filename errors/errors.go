package errors

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrOnlyCensoredFiles = fmt.Errorf("censored directory contains directories")
	ErrEmptyWords        = fmt.Errorf("no words have been found")

	ErrAuth               = fmt.Errorf("authentication failed")
	ErrProtocol           = fmt.Errorf("protocol error")
	ErrValidation         = fmt.Errorf("validation error")
	ErrStorage            = fmt.Errorf("storage error")
	ErrPermission         = fmt.Errorf("permission denied")
	ErrEmptyPayload       = fmt.Errorf("payload must carry text or an attachment")
	ErrSelfMessage        = fmt.Errorf("sender and recipient must differ")
	ErrMessageNotFound    = fmt.Errorf("message not found")
	ErrAttachmentNotFound = fmt.Errorf("attachment not found")
	ErrAttachmentTooLarge = fmt.Errorf("attachment exceeds maximum size")
	ErrConnectionClosed   = fmt.Errorf("connection closed")
	ErrBackpressure       = fmt.Errorf("connection outbound buffer full")
	ErrStateRegression    = fmt.Errorf("delivery state cannot move backwards")
	ErrNotJoined          = fmt.Errorf("session has not joined")
	ErrRateLimited        = fmt.Errorf("rate limited")
)

// Is and As forward to the standard library so callers import a single errors package.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

// Code is the stable identifier sent to clients inside error frames.
type Code string

const (
	CodeAuth       Code = "AuthError"
	CodeProtocol   Code = "ProtocolError"
	CodeValidation Code = "ValidationError"
	CodeStorage    Code = "StorageError"
	CodePermission Code = "PermissionError"
	CodeRateLimit  Code = "RateLimited"
	CodeInternal   Code = "InternalError"
)

// CodeOf classifies err by the first matching sentinel in its chain.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuth):
		return CodeAuth
	case errors.Is(err, ErrPermission):
		return CodePermission
	case errors.Is(err, ErrValidation), errors.Is(err, ErrEmptyPayload),
		errors.Is(err, ErrSelfMessage), errors.Is(err, ErrAttachmentTooLarge):
		return CodeValidation
	case errors.Is(err, ErrProtocol), errors.Is(err, ErrNotJoined):
		return CodeProtocol
	case errors.Is(err, ErrStorage):
		return CodeStorage
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimit
	default:
		return CodeInternal
	}
}

func HTTPStatus(err error) int {
	if errors.Is(err, ErrMessageNotFound) || errors.Is(err, ErrAttachmentNotFound) {
		return http.StatusNotFound
	}
	switch CodeOf(err) {
	case CodeAuth:
		return http.StatusUnauthorized
	case CodePermission:
		return http.StatusForbidden
	case CodeValidation, CodeProtocol:
		return http.StatusBadRequest
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MapToGRPCError keeps status errors untouched and converts domain errors.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var c codes.Code
	switch CodeOf(err) {
	case CodeAuth:
		c = codes.Unauthenticated
	case CodePermission:
		c = codes.PermissionDenied
	case CodeValidation, CodeProtocol:
		c = codes.InvalidArgument
	case CodeRateLimit:
		c = codes.ResourceExhausted
	case CodeStorage:
		c = codes.Unavailable
	default:
		c = codes.Internal
	}
	return status.Error(c, err.Error())
}
