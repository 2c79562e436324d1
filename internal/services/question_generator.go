package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
	"github.com/vis-hal-git/Ai-interviewer/internal/models"
)

const (
	DefaultQuestionCount = 10
	maxPromptSkills      = 10
	defaultDegree        = "Computer Science"
	questionTemp         = 0.7
	questionTokens       = 2000
)

var questionValidator = validator.New()

type QuestionGenerator interface {
	// Generate always returns a usable question set. When generation fails
	// for any reason the static bank from DefaultQuestions is returned.
	Generate(ctx context.Context, profile *models.Profile, jobRole string, count int) []models.Question
}

type questionGenerator struct {
	llm           CompletionService
	bank          QuestionBank
	promptBuilder *PromptBuilder
}

// NewQuestionGenerator builds a generator. bank may be nil.
func NewQuestionGenerator(llm CompletionService, bank QuestionBank) QuestionGenerator {
	return &questionGenerator{
		llm:           llm,
		bank:          bank,
		promptBuilder: NewPromptBuilder(),
	}
}

func (g *questionGenerator) Generate(ctx context.Context, profile *models.Profile, jobRole string, count int) []models.Question {
	if count <= 0 {
		count = DefaultQuestionCount
	}

	questions, err := g.generate(ctx, profile, jobRole, count)
	if err != nil {
		logger.Warn().Err(err).Str("job_role", jobRole).Msg("⚠️ question generation failed, using fallback bank")
		return DefaultQuestions(jobRole)
	}

	return questions
}

func (g *questionGenerator) generate(ctx context.Context, profile *models.Profile, jobRole string, count int) ([]models.Question, error) {
	if profile == nil {
		profile = models.NewEmptyProfile()
	}

	skills := []string(profile.Skills)
	if len(skills) > maxPromptSkills {
		skills = skills[:maxPromptSkills]
	}

	degree := defaultDegree
	if len(profile.Education) > 0 && strings.TrimSpace(string(profile.Education[0].Degree)) != "" {
		degree = string(profile.Education[0].Degree)
	}

	var reference string
	if g.bank != nil {
		reference = g.bank.Reference(ctx, jobRole, skills)
	}

	prompt := g.promptBuilder.BuildQuestionPrompt(QuestionPromptInput{
		JobRole:         jobRole,
		Skills:          skills,
		ExperienceCount: len(profile.Experience),
		Degree:          degree,
		ProjectCount:    len(profile.Projects),
		Count:           count,
		ReferenceBank:   reference,
	})

	raw, err := g.llm.Complete(ctx, CompletionRequest{
		SystemPrompt: questionSystemPrompt,
		UserPrompt:   prompt,
		Temperature:  questionTemp,
		MaxTokens:    questionTokens,
	})
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuestions(raw)
	if err != nil {
		return nil, err
	}

	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

// ParseQuestions decodes a (possibly fenced) JSON array of questions. An
// empty array or any entry failing validation is ErrMalformedResponse.
func ParseQuestions(raw string) ([]models.Question, error) {
	var questions []models.Question
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list", ErrMalformedResponse)
	}

	for i := range questions {
		q := &questions[i]
		q.Text = strings.TrimSpace(q.Text)
		q.Category = models.QuestionCategory(strings.ToLower(strings.TrimSpace(string(q.Category))))
		q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
		if q.SkillsTested == nil {
			q.SkillsTested = models.StringList{}
		}

		if err := questionValidator.Struct(q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrMalformedResponse, i, err)
		}
	}

	return questions, nil
}

// DefaultQuestions is the static fallback bank. Only two entries mention jobRole.
func DefaultQuestions(jobRole string) []models.Question {
	return []models.Question{
		{
			Text:         "Tell me about yourself and your professional background.",
			Category:     models.CategoryGeneral,
			Difficulty:   "easy",
			SkillsTested: models.StringList{"communication", "background"},
		},
		{
			Text:         "Why are you interested in this role?",
			Category:     models.CategoryBehavioral,
			Difficulty:   "easy",
			SkillsTested: models.StringList{"motivation", "career goals"},
		},
		{
			Text:         fmt.Sprintf("What experience do you have that makes you a good fit for a %s position?", jobRole),
			Category:     models.CategoryTechnical,
			Difficulty:   "medium",
			SkillsTested: models.StringList{"experience", "domain knowledge"},
		},
		{
			Text:         "Describe a challenging project you've worked on and how you solved it.",
			Category:     models.CategoryBehavioral,
			Difficulty:   "medium",
			SkillsTested: models.StringList{"problem-solving", "project management"},
		},
		{
			Text:         "How do you stay updated with the latest technologies in your field?",
			Category:     models.CategoryGeneral,
			Difficulty:   "easy",
			SkillsTested: models.StringList{"learning", "passion"},
		},
		{
			Text:         fmt.Sprintf("What technical skills are most important for a %s?", jobRole),
			Category:     models.CategoryTechnical,
			Difficulty:   "medium",
			SkillsTested: models.StringList{"technical knowledge"},
		},
		{
			Text:         "Describe your development workflow and tools you use daily.",
			Category:     models.CategoryTechnical,
			Difficulty:   "medium",
			SkillsTested: models.StringList{"tools", "workflow"},
		},
		{
			Text:         "Tell me about a time you had to work under pressure.",
			Category:     models.CategoryBehavioral,
			Difficulty:   "medium",
			SkillsTested: models.StringList{"stress management", "adaptability"},
		},
		{
			Text:         "How do you handle code reviews and feedback?",
			Category:     models.CategoryBehavioral,
			Difficulty:   "easy",
			SkillsTested: models.StringList{"collaboration", "growth mindset"},
		},
		{
			Text:         "What are your career goals for the next 2-3 years?",
			Category:     models.CategoryGeneral,
			Difficulty:   "easy",
			SkillsTested: models.StringList{"career planning", "ambition"},
		},
	}
}
