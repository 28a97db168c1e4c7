package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/coursegen-api/internal/domain"
)

// schemaValidator validates decoded model output. Field names in errors use
// the JSON names the model was asked to produce.
var schemaValidator = newSchemaValidator()

func newSchemaValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ExtractJSON returns the JSON object embedded in text, spanning from the first
// '{' to the last '}' inclusive. Prose and markdown fences around the object
// are discarded. It fails with domain.ErrMalformedModelOutput when no such
// span exists or the span is not valid JSON.
func ExtractJSON(text string) ([]byte, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object found in %d characters of output",
			domain.ErrMalformedModelOutput, len(text))
	}

	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, fmt.Errorf("%w: extracted object is not valid JSON", domain.ErrMalformedModelOutput)
	}

	return candidate, nil
}

// Decode extracts the JSON object from text, unmarshals it into v and then
// validates v against its `validate` struct tags. Shape failures are reported
// as domain.ErrInvalidResponse with every offending field listed.
func Decode(text string, v any) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedModelOutput, err)
	}

	if err := schemaValidator.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidResponse, describeFieldErrors(fieldErrs))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	return nil
}

// describeFieldErrors renders validation failures as
// "lessons[0].title (required), lessons[2].search_query (required)".
func describeFieldErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		// Drop the root struct's type name.
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", field, tag))
	}
	return strings.Join(parts, ", ")
}
