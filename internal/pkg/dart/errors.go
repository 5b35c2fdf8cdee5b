package dart

import (
	"errors"
	"fmt"
)

// defined error that document not found
var ErrDocumentNotFound = errors.New("document not found")

// APIError is a non-000 status returned by the DART OpenAPI.
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("DART error %s: %s", e.Status, e.Message)
}

// Invalid reports whether the status is a validation-class failure.
// 100: 부적절한 필드값, 014: 파일이 존재하지 않음
func (e *APIError) Invalid() bool {
	return e.Status == "100" || e.Status == "014"
}

// ParamError is a parameter problem detected before any upstream call, such
// as an unresolvable corp identifier or an unknown report keyword.
type ParamError struct {
	Msg string
}

func (e *ParamError) Error() string {
	return e.Msg
}
