package generation

import (
	"testing"

	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLesson struct {
	Title       string `json:"title"        validate:"required"`
	SearchQuery string `json:"search_query" validate:"required"`
}

type testPlan struct {
	Lessons []testLesson `json:"lessons" validate:"required,min=1,dive"`
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "object surrounded by prose",
			input: "Here is your plan:\n{\"lessons\":[{\"title\":\"A\"}]}\nEnjoy!",
			want:  `{"lessons":[{"title":"A"}]}`,
		},
		{
			name:  "markdown fence",
			input: "```json\n{\"quiz\": []}\n```",
			want:  `{"quiz": []}`,
		},
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "nested braces use first open and last close",
			input: `note {"outer":{"inner":{}}} done`,
			want:  `{"outer":{"inner":{}}}`,
		},
		{
			name:    "no braces",
			input:   "Sorry, I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "only closing brace before opening",
			input:   "} oops {",
			wantErr: true,
		},
		{
			name:    "empty output",
			input:   "",
			wantErr: true,
		},
		{
			name:    "invalid json between braces",
			input:   `{"lessons": [unquoted]}`,
			wantErr: true,
		},
		{
			name:    "two objects are not one object",
			input:   `{"a":1} and {"b":2}`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractJSON(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrMalformedModelOutput)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	var plan testPlan
	err := Decode("Sure!\n"+`{"lessons":[{"title":"Intro","search_query":"intro video"}]}`, &plan)
	require.NoError(t, err)
	require.Len(t, plan.Lessons, 1)
	assert.Equal(t, "Intro", plan.Lessons[0].Title)
	assert.Equal(t, "intro video", plan.Lessons[0].SearchQuery)
}

func TestDecode_SchemaViolationsAreEnumerated(t *testing.T) {
	t.Parallel()

	var plan testPlan
	err := Decode(`{"lessons":[{"title":""},{"title":"ok","search_query":"q"},{"search_query":"q"}]}`, &plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	assert.ErrorIs(t, err, domain.ErrMalformedModelOutput)
	assert.Contains(t, err.Error(), "lessons[0].title (required)")
	assert.Contains(t, err.Error(), "lessons[0].search_query (required)")
	assert.Contains(t, err.Error(), "lessons[2].title (required)")
	assert.NotContains(t, err.Error(), "lessons[1]")
}

func TestDecode_MissingTopLevelField(t *testing.T) {
	t.Parallel()

	var plan testPlan
	err := Decode(`{"course":[]}`, &plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	assert.Contains(t, err.Error(), "lessons (required)")
}

func TestDecode_EmptyList(t *testing.T) {
	t.Parallel()

	var plan testPlan
	err := Decode(`{"lessons":[]}`, &plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lessons (min=1)")
}

func TestDecode_WrongJSONType(t *testing.T) {
	t.Parallel()

	var plan testPlan
	err := Decode(`{"lessons":"not a list"}`, &plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedModelOutput)
	assert.NotErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestDecode_NoJSON(t *testing.T) {
	t.Parallel()

	var plan testPlan
	err := Decode("I could not produce a plan.", &plan)
	assert.ErrorIs(t, err, domain.ErrMalformedModelOutput)
}
