package domain

import (
	"strings"
	"time"
)

// MaxTranscriptChars bounds the transcript text sent to the model.
const MaxTranscriptChars = 8000

// TranscriptSegment is one timed text fragment of a video transcript.
type TranscriptSegment struct {
	Text     string
	Offset   time.Duration
	Duration time.Duration
}

// JoinTranscript concatenates segment texts separated by single spaces.
func JoinTranscript(segments []TranscriptSegment) string {
	var b strings.Builder
	for i, s := range segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// TruncateRunes returns at most limit characters of s. It may cut mid-word.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
