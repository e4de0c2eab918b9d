package bitable

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthError_Error(t *testing.T) {
	err := &AuthError{Code: 10003, Msg: "invalid param"}

	assert.Equal(t, "authentication failed: invalid param (code: 10003)", err.Error())
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: 1254043, Msg: "RecordIdNotFound", HTTPStatus: 200}

	assert.Equal(t, "request failed: RecordIdNotFound (code: 1254043)", err.Error())
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		isAuth  bool
		isAPI   bool
		code    int
		hasCode bool
	}{
		{name: "auth error", err: &AuthError{Code: 10014, Msg: "app secret invalid"}, isAuth: true, code: 10014, hasCode: true},
		{name: "wrapped auth error", err: fmt.Errorf("getting access token: %w", &AuthError{Code: 10003}), isAuth: true, code: 10003, hasCode: true},
		{name: "api error", err: &APIError{Code: 91402, Msg: "NOTEXIST"}, isAPI: true, code: 91402, hasCode: true},
		{name: "wrapped api error", err: fmt.Errorf("listing records: %w", &APIError{Code: ErrorCodeUnparsable}), isAPI: true, code: -1, hasCode: true},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isAuth, IsAuthError(tt.err))
			assert.Equal(t, tt.isAPI, IsAPIError(tt.err))

			code, ok := ErrorCode(tt.err)
			assert.Equal(t, tt.hasCode, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}
