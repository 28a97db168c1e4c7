package generation

import (
	"errors"
	"fmt"

	"github.com/phrazzld/coursegen-api/internal/domain"
)

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when prompt templates cannot be loaded.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPromptInput is returned when a prompt is rendered without its subject.
	ErrEmptyPromptInput = errors.New("prompt input cannot be empty")

	// ErrContentBlocked is returned when the model refuses the request because of
	// its safety filters.
	ErrContentBlocked = fmt.Errorf("%w: content blocked by language model safety filters",
		domain.ErrUpstreamFailure)
)
