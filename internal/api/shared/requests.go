package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/coursegen-api/internal/domain"
)

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 1 << 20

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSON decodes the request body into v. A body that is not valid JSON
// yields an error wrapping domain.ErrInvalidRequest.
func DecodeJSON(r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidRequest, err)
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
// Failures wrap domain.ErrInvalidRequest.
func ValidateRequest(v interface{}) error {
	var err error
	if custom, ok := v.(interface{ Validate() error }); ok {
		err = custom.Validate()
	} else {
		err = validate.Struct(v)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return nil
}
