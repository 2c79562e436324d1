package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/vis-hal-git/Ai-interviewer/internal/models"
)

type stubBank struct {
	reference string
	calls     int
}

func (s *stubBank) Reference(context.Context, string, []string) string {
	s.calls++
	return s.reference
}

func testProfile() *models.Profile {
	p := models.NewEmptyProfile()
	p.Skills = datatypes.JSONSlice[string]{"Go", "PostgreSQL", "Kubernetes"}
	p.Education = datatypes.JSONSlice[models.Education]{{Degree: "MSc Informatics"}}
	p.Experience = datatypes.JSONSlice[models.Experience]{{Title: "Engineer"}, {Title: "Intern"}}
	return p
}

func generatedQuestions(n int) string {
	var items []string
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(
			`{"question": "Question %d?", "category": "Technical", "difficulty": "MEDIUM", "skills_tested": ["Go"]}`, i))
	}
	return "```json\n[" + strings.Join(items, ",") + "]\n```"
}

func TestQuestionGenerator_EmptyArrayFallsBackToBank(t *testing.T) {
	llm := replyWith("[]")

	questions := NewQuestionGenerator(llm, nil).Generate(context.Background(), testProfile(), "Data Engineer", 10)

	assert.Equal(t, DefaultQuestions("Data Engineer"), questions)
	require.Len(t, questions, 10)
	assert.Equal(t, "What experience do you have that makes you a good fit for a Data Engineer position?", questions[2].Text)
	assert.Equal(t, "What technical skills are most important for a Data Engineer?", questions[5].Text)

	var mentions int
	for _, q := range questions {
		if strings.Contains(q.Text, "Data Engineer") {
			mentions++
		}
	}
	assert.Equal(t, 2, mentions)
}

func TestQuestionGenerator_ServiceFailureFallsBack(t *testing.T) {
	llm := failWith(errors.New("timeout"))

	questions := NewQuestionGenerator(llm, nil).Generate(context.Background(), testProfile(), "SRE", 10)

	assert.Equal(t, DefaultQuestions("SRE"), questions)
	assert.Equal(t, 1, llm.Calls())
}

func TestQuestionGenerator_SemanticCheckFailureFallsBack(t *testing.T) {
	llm := replyWith(`[{"question": "Why Go?", "category": "trivia", "difficulty": "easy"}]`)

	questions := NewQuestionGenerator(llm, nil).Generate(context.Background(), testProfile(), "SRE", 10)

	assert.Equal(t, DefaultQuestions("SRE"), questions)
}

func TestQuestionGenerator_TruncatesToCount(t *testing.T) {
	llm := replyWith(generatedQuestions(8))

	questions := NewQuestionGenerator(llm, nil).Generate(context.Background(), testProfile(), "Backend Engineer", 5)

	require.Len(t, questions, 5)
	assert.Equal(t, "Question 0?", questions[0].Text)
	assert.Equal(t, models.CategoryTechnical, questions[0].Category)
	assert.Equal(t, "medium", questions[0].Difficulty)
	assert.Equal(t, models.StringList{"Go"}, questions[0].SkillsTested)

	req := llm.requests[0]
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, int32(2000), req.MaxTokens)
	assert.Contains(t, req.UserPrompt, "Generate exactly 5 interview questions")
}

func TestQuestionGenerator_PromptUsesProfile(t *testing.T) {
	profile := testProfile()
	for i := 0; i < 12; i++ {
		profile.Skills = append(profile.Skills, fmt.Sprintf("skill-%02d", i))
	}
	llm := replyWith(generatedQuestions(10))
	bank := &stubBank{reference: "[1] Explain the Go scheduler.\n"}

	NewQuestionGenerator(llm, bank).Generate(context.Background(), profile, "Backend Engineer", 0)

	prompt := llm.requests[0].UserPrompt
	assert.Contains(t, prompt, "Go, PostgreSQL, Kubernetes, skill-00")
	assert.Contains(t, prompt, "skill-06")
	assert.NotContains(t, prompt, "skill-07")
	assert.Contains(t, prompt, "Years of Experience: 2")
	assert.Contains(t, prompt, "Education: MSc Informatics")
	assert.Contains(t, prompt, "Generate exactly 10 interview questions")
	assert.Contains(t, prompt, "Explain the Go scheduler.")
	assert.Equal(t, 1, bank.calls)
}

func TestQuestionGenerator_DefaultDegree(t *testing.T) {
	llm := replyWith(generatedQuestions(3))

	NewQuestionGenerator(llm, nil).Generate(context.Background(), models.NewEmptyProfile(), "QA", 3)

	assert.Contains(t, llm.requests[0].UserPrompt, "Education: Computer Science")
	assert.Contains(t, llm.requests[0].UserPrompt, "Skills: general programming")
}

func TestGeneralQuestionCount(t *testing.T) {
	assert.Equal(t, 2, generalQuestionCount(10))
	assert.Equal(t, 1, generalQuestionCount(5))
	assert.Equal(t, 1, generalQuestionCount(2))
	assert.Equal(t, 0, generalQuestionCount(1))
}
