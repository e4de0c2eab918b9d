package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoAppToken       = errors.New("no app token configured, pass --app-token or set BITABLE_APP_TOKEN")
	ErrNoAppCredentials = errors.New("no app credentials configured, pass --app-id and --app-secret or set BITABLE_APP_ID and BITABLE_APP_SECRET")
)

// Validation errors.
var (
	ErrInvalidFieldType  = errors.New("invalid field type")
	ErrInvalidFieldsJSON = errors.New("--fields must be a JSON object")
	ErrInvalidProperty   = errors.New("--property must be a JSON object")
	ErrFieldsRequired    = errors.New("--fields flag is required")
	ErrTypeRequired      = errors.New("--type flag is required")
	ErrUnknownOutput     = errors.New("unknown output format")
)

// Lookup errors.
var (
	ErrTableNotFound = errors.New("table not found")
	ErrFieldNotFound = errors.New("field not found")
)
