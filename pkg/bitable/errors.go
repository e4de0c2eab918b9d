package bitable

import (
	"errors"
	"fmt"
)

// AuthError is returned when the tenant access token call answers with a
// non-zero code.
type AuthError struct {
	Code int    `json:"code" yaml:"code"`
	Msg  string `json:"msg"  yaml:"msg"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s (code: %d)", e.Msg, e.Code)
}

// APIError is returned when any other request answers with a non-zero code.
// HTTPStatus is the transport status the envelope arrived with.
type APIError struct {
	Code       int    `json:"code"        yaml:"code"`
	Msg        string `json:"msg"         yaml:"msg"`
	HTTPStatus int    `json:"http_status" yaml:"http_status"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("request failed: %s (code: %d)", e.Msg, e.Code)
}

// ErrorCodeUnparsable is used for error responses whose body is not an envelope.
const ErrorCodeUnparsable = -1

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrAppIDRequired            = errors.New("app ID is required")
	ErrAppSecretRequired        = errors.New("app secret is required")
	ErrAppTokenRequired         = errors.New("app token is required")
	ErrTableIDRequired          = errors.New("table ID is required")
	ErrRecordIDRequired         = errors.New("record ID is required")
	ErrEmptyPageToken           = errors.New("server reported more pages without a page token")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// IsAuthError checks if the error is an authentication error.
func IsAuthError(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr)
}

// IsAPIError checks if the error is an API error.
func IsAPIError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}

// ErrorCode returns the server code carried by an AuthError or APIError.
func ErrorCode(err error) (int, bool) {
	authErr := &AuthError{}
	if errors.As(err, &authErr) {
		return authErr.Code, true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}

	return 0, false
}
