package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
	"github.com/vis-hal-git/Ai-interviewer/internal/models"
)

const (
	MaxProfilePromptChars     = 12000
	profileExtractionAttempts = 2
	profileExtractionTemp     = 0.1
	profileExtractionTokens   = 3000
)

// ProfileFields is the completion-sourced part of a profile. Every sequence
// is non-nil; Name and Summary are nil when absent.
type ProfileFields struct {
	Name               *string
	Skills             models.StringList
	Experience         []models.Experience
	Education          []models.Education
	Certifications     models.StringList
	Projects           []models.Project
	Achievements       models.StringList
	Languages          models.StringList
	Publications       []models.Publication
	Volunteer          []models.Volunteer
	Summary            *string
	AdditionalSections map[string]interface{}
}

// EmptyProfileFields is the degraded result of every failed extraction.
func EmptyProfileFields() ProfileFields {
	f := ProfileFields{}
	f.backfill()
	return f
}

func (f *ProfileFields) backfill() {
	if f.Skills == nil {
		f.Skills = models.StringList{}
	}
	if f.Experience == nil {
		f.Experience = []models.Experience{}
	}
	if f.Education == nil {
		f.Education = []models.Education{}
	}
	if f.Certifications == nil {
		f.Certifications = models.StringList{}
	}
	if f.Projects == nil {
		f.Projects = []models.Project{}
	}
	for i := range f.Projects {
		if f.Projects[i].Technologies == nil {
			f.Projects[i].Technologies = models.StringList{}
		}
	}
	if f.Achievements == nil {
		f.Achievements = models.StringList{}
	}
	if f.Languages == nil {
		f.Languages = models.StringList{}
	}
	if f.Publications == nil {
		f.Publications = []models.Publication{}
	}
	if f.Volunteer == nil {
		f.Volunteer = []models.Volunteer{}
	}
	if f.AdditionalSections == nil {
		f.AdditionalSections = map[string]interface{}{}
	}
}

type ProfileExtractor interface {
	// Extract never fails. Degenerate text or any completion problem yields
	// EmptyProfileFields.
	Extract(ctx context.Context, text string) ProfileFields
}

type profileExtractor struct {
	llm           CompletionService
	promptBuilder *PromptBuilder
}

func NewProfileExtractor(llm CompletionService) ProfileExtractor {
	return &profileExtractor{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
	}
}

func (p *profileExtractor) Extract(ctx context.Context, text string) ProfileFields {
	fields, err := p.extract(ctx, text)
	switch {
	case err == nil:
		return fields
	case errors.Is(err, ErrDegenerateInput):
		logger.Warn().Int("chars", NonSpaceLen(text)).Msg("⚠️ resume text too short for profile extraction")
	default:
		logger.Warn().Err(err).Msg("⚠️ profile extraction degraded to empty structure")
	}
	return EmptyProfileFields()
}

func (p *profileExtractor) extract(ctx context.Context, text string) (ProfileFields, error) {
	if NonSpaceLen(text) < QualityFloor {
		return ProfileFields{}, ErrDegenerateInput
	}

	prompt := p.promptBuilder.BuildProfileExtractionPrompt(truncateRunes(text, MaxProfilePromptChars))

	raw, err := CompleteWithRetry(ctx, p.llm, CompletionRequest{
		SystemPrompt: profileExtractionSystemPrompt,
		UserPrompt:   prompt,
		Temperature:  profileExtractionTemp,
		MaxTokens:    profileExtractionTokens,
	}, profileExtractionAttempts)
	if err != nil {
		return ProfileFields{}, err
	}

	return ParseProfileFields(raw)
}

var knownProfileKeys = map[string]struct{}{
	"name": {}, "skills": {}, "experience": {}, "education": {}, "certifications": {},
	"projects": {}, "achievements": {}, "languages": {}, "publications": {}, "volunteer": {},
	"summary": {},
	// contact fields come from regex and are never taken from the response
	"email": {}, "phone": {}, "linkedin": {}, "github": {}, "portfolio": {},
}

// ParseProfileFields decodes a (possibly fenced) completion response. Anything
// that is not a JSON object is ErrMalformedResponse. A known section with an
// unexpected shape falls back to its empty value on its own.
func ParseProfileFields(raw string) (ProfileFields, error) {
	payload := []byte(StripCodeFence(raw))

	var object map[string]json.RawMessage
	if err := json.Unmarshal(payload, &object); err != nil || object == nil {
		return ProfileFields{}, fmt.Errorf("%w: response is not a JSON object", ErrMalformedResponse)
	}

	fields := ProfileFields{
		Name:           optionalText(decodeSection[models.FlexString](object, "name")),
		Skills:         decodeSection[models.StringList](object, "skills"),
		Experience:     decodeSection[[]models.Experience](object, "experience"),
		Education:      decodeSection[[]models.Education](object, "education"),
		Certifications: decodeSection[models.StringList](object, "certifications"),
		Projects:       decodeSection[[]models.Project](object, "projects"),
		Achievements:   decodeSection[models.StringList](object, "achievements"),
		Languages:      decodeSection[models.StringList](object, "languages"),
		Publications:   decodeSection[[]models.Publication](object, "publications"),
		Volunteer:      decodeSection[[]models.Volunteer](object, "volunteer"),
		Summary:        optionalText(decodeSection[models.FlexString](object, "summary")),
	}
	fields.Skills = fields.Skills.Dedupe()
	fields.backfill()

	for key, value := range object {
		if _, known := knownProfileKeys[key]; known {
			continue
		}
		var section interface{}
		if err := json.Unmarshal(value, &section); err == nil && section != nil {
			fields.AdditionalSections[key] = section
		}
	}

	return fields, nil
}

// decodeSection returns the zero T when key is absent or does not fit T.
func decodeSection[T any](object map[string]json.RawMessage, key string) T {
	var v T
	value, ok := object[key]
	if !ok {
		return v
	}
	if err := json.Unmarshal(value, &v); err != nil {
		logger.Warn().Err(err).Str("section", key).Msg("⚠️ dropping malformed profile section")
		var zero T
		return zero
	}
	return v
}

func optionalText(s models.FlexString) *string {
	trimmed := strings.TrimSpace(string(s))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
