package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vis-hal-git/Ai-interviewer/internal/models"
)

const profileJSON = `{
  "name": "Jane Doe",
  "email": "someone@else.com",
  "skills": ["Go", "PostgreSQL", "go", "Docker"],
  "experience": [{"title": "Backend Engineer", "company": "Acme", "duration": 2021, "description": "Payments"}],
  "education": [{"degree": "BSc Computer Science", "institution": "TU Berlin", "year": 2019}],
  "certifications": "CKA",
  "projects": [{"name": "Ledger", "technologies": ["Go", {"name": "Kafka"}], "link": "https://ledger.vercel.app"}],
  "summary": "  Backend engineer focused on payments.  ",
  "hobbies": ["chess", "climbing"]
}`

func TestProfileExtractor_DegenerateInputSkipsCompletion(t *testing.T) {
	llm := replyWith(profileJSON)

	fields := NewProfileExtractor(llm).Extract(context.Background(), "   Jane   \n  Doe  ")

	assert.Zero(t, llm.Calls())
	assert.Equal(t, EmptyProfileFields(), fields)
}

func TestProfileExtractor_ParsesFencedResponse(t *testing.T) {
	llm := replyWith("```json\n" + profileJSON + "\n```")

	fields := NewProfileExtractor(llm).Extract(context.Background(), resumeText)

	require.Equal(t, 1, llm.Calls())
	req := llm.requests[0]
	assert.Equal(t, float32(0.1), req.Temperature)
	assert.Equal(t, int32(3000), req.MaxTokens)
	assert.Equal(t, profileExtractionSystemPrompt, req.SystemPrompt)

	require.NotNil(t, fields.Name)
	assert.Equal(t, "Jane Doe", *fields.Name)
	assert.Equal(t, models.StringList{"Go", "PostgreSQL", "Docker"}, fields.Skills)
	require.Len(t, fields.Experience, 1)
	assert.Equal(t, models.FlexString("2021"), fields.Experience[0].Duration)
	require.Len(t, fields.Education, 1)
	assert.Equal(t, models.FlexString("2019"), fields.Education[0].Year)
	assert.Equal(t, models.StringList{"CKA"}, fields.Certifications)
	require.Len(t, fields.Projects, 1)
	assert.Equal(t, models.StringList{"Go", "Kafka"}, fields.Projects[0].Technologies)
	require.NotNil(t, fields.Summary)
	assert.Equal(t, "Backend engineer focused on payments.", *fields.Summary)
	assert.Equal(t, []interface{}{"chess", "climbing"}, fields.AdditionalSections["hobbies"])
	assert.NotContains(t, fields.AdditionalSections, "email")
}

func TestProfileExtractor_BackfillsMissingFields(t *testing.T) {
	llm := replyWith(`{"skills": ["Go"]}`)

	fields := NewProfileExtractor(llm).Extract(context.Background(), resumeText)

	assert.Nil(t, fields.Name)
	assert.Nil(t, fields.Summary)
	assert.Equal(t, models.StringList{"Go"}, fields.Skills)
	for name, v := range map[string]interface{}{
		"experience":     fields.Experience,
		"education":      fields.Education,
		"certifications": fields.Certifications,
		"projects":       fields.Projects,
		"achievements":   fields.Achievements,
		"languages":      fields.Languages,
		"publications":   fields.Publications,
		"volunteer":      fields.Volunteer,
	} {
		assert.NotNil(t, v, name)
		assert.Empty(t, v, name)
	}
	assert.NotNil(t, fields.AdditionalSections)
}

func TestProfileExtractor_RetriesTransportFailureOnce(t *testing.T) {
	llm := &stubCompletion{fn: func(call int, _ CompletionRequest) (string, error) {
		if call == 0 {
			return "", errors.New("503 overloaded")
		}
		return profileJSON, nil
	}}

	fields := NewProfileExtractor(llm).Extract(context.Background(), resumeText)

	assert.Equal(t, 2, llm.Calls())
	require.NotNil(t, fields.Name)
	assert.Equal(t, "Jane Doe", *fields.Name)
}

func TestProfileExtractor_GivesUpAfterTwoAttempts(t *testing.T) {
	llm := failWith(errors.New("connection reset"))

	fields := NewProfileExtractor(llm).Extract(context.Background(), resumeText)

	assert.Equal(t, 2, llm.Calls())
	assert.Equal(t, EmptyProfileFields(), fields)
}

func TestProfileExtractor_UnparseableResponseIsNotRetried(t *testing.T) {
	for name, reply := range map[string]string{
		"prose": "Sorry, I cannot help with that.",
		"array": `["Go", "Docker"]`,
		"null":  "null",
	} {
		t.Run(name, func(t *testing.T) {
			llm := replyWith(reply)

			fields := NewProfileExtractor(llm).Extract(context.Background(), resumeText)

			assert.Equal(t, 1, llm.Calls())
			assert.Equal(t, EmptyProfileFields(), fields)
		})
	}
}

func TestProfileExtractor_TruncatesPromptText(t *testing.T) {
	const marker = "TAIL-MARKER-BEYOND-LIMIT"
	text := strings.Repeat("x", MaxProfilePromptChars) + marker
	llm := replyWith(`{}`)

	NewProfileExtractor(llm).Extract(context.Background(), text)

	require.Equal(t, 1, llm.Calls())
	assert.NotContains(t, llm.requests[0].UserPrompt, marker)
	assert.Contains(t, llm.requests[0].UserPrompt, strings.Repeat("x", MaxProfilePromptChars))
}

func TestParseProfileFields_MalformedIsTyped(t *testing.T) {
	_, err := ParseProfileFields("not json")

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseProfileFields_BadSectionKeepsTheRest(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantExperience int
		wantEducation  int
	}{
		{
			name: "experience as strings",
			raw: `{"name": "Jane Doe", "skills": ["Go", "Python"], "summary": "Builder",
				"experience": ["Backend engineer at Acme 2020-2023"],
				"education": [{"degree": "BSc", "institution": "MIT"}]}`,
			wantExperience: 0,
			wantEducation:  1,
		},
		{
			name: "education as object",
			raw: `{"name": "Jane Doe", "skills": ["Go", "Python"], "summary": "Builder",
				"experience": [{"title": "Engineer", "company": "Acme"}],
				"education": {"degree": "BSc", "institution": "MIT"}}`,
			wantExperience: 1,
			wantEducation:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := ParseProfileFields(tt.raw)
			require.NoError(t, err)

			require.NotNil(t, fields.Name)
			assert.Equal(t, "Jane Doe", *fields.Name)
			require.NotNil(t, fields.Summary)
			assert.Equal(t, "Builder", *fields.Summary)
			assert.Equal(t, models.StringList{"Go", "Python"}, fields.Skills)

			assert.NotNil(t, fields.Experience)
			assert.Len(t, fields.Experience, tt.wantExperience)
			assert.NotNil(t, fields.Education)
			assert.Len(t, fields.Education, tt.wantEducation)
		})
	}
}

func TestResumeParser_BadSectionStillAllowsInterview(t *testing.T) {
	llm := replyWith(`{"name": "Jane Doe", "skills": ["Go"], "experience": ["Engineer at Acme"]}`)

	profile := newTestParser(resumeText, llm).Parse(context.Background(), "resume.pdf")

	assert.Equal(t, "Jane Doe", profile.FullName)
	assert.Equal(t, []string{"Go"}, []string(profile.Skills))
	assert.Empty(t, profile.Experience)
}
