// Package gemini provides an implementation of the generation.Completer
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it translates a plain prompt into a
// generateContent request through the google.golang.org/genai client and turns
// the reply back into text. It knows nothing about lessons, quizzes or
// summaries; prompt construction and JSON extraction live in the generation
// package.
//
// Error handling:
//   - Transport and API errors wrap domain.ErrUpstreamFailure
//   - Responses stopped by safety filters return generation.ErrContentBlocked
//   - Empty or candidate-less responses wrap domain.ErrUpstreamFailure
//
// Requests are never retried.
package gemini
