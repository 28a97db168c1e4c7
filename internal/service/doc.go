// Package service contains the application-specific use cases of the course
// generator. It orchestrates the language model, the video search and
// transcript sources, and the plan store (defined in internal/store) to
// fulfill the API's features.
//
// Key components:
//
// 1. Use cases:
//   - CourseService: generate a lesson plan, page through it and attach videos
//   - QuizService: build a multiple-choice quiz for a lesson title
//   - SummaryService: summarize a video from its transcript
//
// 2. Collaborators:
//   - Planner and Enricher are the building blocks of CourseService
//   - External systems are reached only through the narrow interfaces in
//     ports.go and generation.Completer
//
// 3. Error Handling:
//   - Failures carry the sentinel errors of the domain package
//   - Unexpected errors are wrapped in ServiceError for operation context
//   - The API layer maps errors to HTTP status codes with errors.Is
//
// The service layer depends on domain entities and interfaces, never on
// specific infrastructure implementations.
package service
