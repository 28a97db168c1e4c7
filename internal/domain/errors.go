package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. The API layer maps these to HTTP
// status codes with errors.Is, so wrap them with %w rather than replacing them.
var (
	// ErrInvalidRequest is returned when a required field is missing or malformed.
	// API layer maps this to HTTP 400.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCourseNotFound is returned when no plan is cached for a topic.
	// API layer maps this to HTTP 404.
	ErrCourseNotFound = errors.New("course not found")

	// ErrMalformedModelOutput is returned when the model's text does not contain
	// a parseable JSON object.
	ErrMalformedModelOutput = errors.New("malformed model output")

	// ErrInvalidResponse is returned when model output parses as JSON but does not
	// match the expected shape.
	ErrInvalidResponse = fmt.Errorf("%w: unexpected response shape", ErrMalformedModelOutput)

	// ErrTranscriptUnavailable is returned when a video has no transcript or
	// transcripts are disabled for it.
	ErrTranscriptUnavailable = errors.New("transcript not available")

	// ErrUpstreamFailure is returned for any other failure of the language model,
	// the video search API or the transcript source.
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrInvalidPage is returned when a page number is less than 1.
	ErrInvalidPage = fmt.Errorf("%w: page must be a positive integer", ErrInvalidRequest)

	// ErrEmptyTopic is returned when a plan is built without a topic.
	ErrEmptyTopic = fmt.Errorf("%w: topic cannot be empty", ErrInvalidRequest)
)
