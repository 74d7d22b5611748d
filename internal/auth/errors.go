package auth

import "fmt"

// Machine-readable authorization failure codes.
const (
	CodeHeaderMissing     = "authorization_header_missing"
	CodeInvalidHeader     = "invalid_header"
	CodeWrongType         = "wrong_authorization_type"
	CodeKeyRetrieval      = "key_retrieval_failed"
	CodeMalformedToken    = "malformed_token"
	CodeUnknownKey        = "unknown_key"
	CodeTokenExpired      = "token_expired"
	CodeInvalidClaims     = "invalid_claims"
	CodeNoPermissionData  = "no_permission_data"
	CodeMissingPermission = "missing_permission"
)

// Error is an authorization failure. Every code is reported as 401.
type Error struct {
	Code        string
	Description string
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Err)
	}
	return e.Code + ": " + e.Description
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code, description string, cause error) *Error {
	return &Error{Code: code, Description: description, Err: cause}
}
