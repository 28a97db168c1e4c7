// Package generation defines the boundary between the application and the
// generative AI model (Gemini) used for content generation. It owns the
// Completer interface, the prompt templates sent to the model, and the
// extraction of structured JSON from the model's free-form text replies.
package generation
