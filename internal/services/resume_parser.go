package services

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
	"github.com/vis-hal-git/Ai-interviewer/internal/models"
)

const (
	MaxRawTextChars      = 5000
	defaultCandidateName = "Candidate"
	unknownCandidateName = "Unknown"
)

type ResumeParser interface {
	// Parse never fails. Unreadable or near-empty documents produce an
	// empty profile named "Unknown".
	Parse(ctx context.Context, filePath string) *models.Profile
}

type resumeParser struct {
	text     TextExtractor
	contacts ContactExtractor
	fields   ProfileExtractor
}

func NewResumeParser(text TextExtractor, contacts ContactExtractor, fields ProfileExtractor) ResumeParser {
	return &resumeParser{
		text:     text,
		contacts: contacts,
		fields:   fields,
	}
}

func (p *resumeParser) Parse(ctx context.Context, filePath string) *models.Profile {
	text := p.text.Extract(ctx, filePath)
	if NonSpaceLen(text) < QualityFloor {
		logger.Warn().Str("file", filePath).Int("chars", NonSpaceLen(text)).Msg("⚠️ extracted text below quality floor")
		profile := models.NewEmptyProfile()
		profile.FullName = unknownCandidateName
		return profile
	}

	var (
		contact ContactInfo
		fields  ProfileFields
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		contact = p.contacts.Extract(text)
		return nil
	})
	g.Go(func() error {
		fields = p.fields.Extract(gctx, text)
		return nil
	})
	_ = g.Wait()

	return mergeProfile(text, contact, fields)
}

// mergeProfile takes contact fields from the regex pass and everything else
// from the completion pass.
func mergeProfile(text string, contact ContactInfo, fields ProfileFields) *models.Profile {
	name := defaultCandidateName
	if fields.Name != nil {
		name = *fields.Name
	}

	profile := &models.Profile{
		FullName:           name,
		Email:              contact.Email,
		Phone:              contact.Phone,
		LinkedIn:           contact.LinkedIn,
		GitHub:             contact.GitHub,
		Portfolio:          contact.Portfolio,
		Skills:             datatypes.JSONSlice[string](fields.Skills.Dedupe()),
		Experience:         fields.Experience,
		Education:          fields.Education,
		Certifications:     datatypes.JSONSlice[string](fields.Certifications),
		Projects:           fields.Projects,
		Achievements:       datatypes.JSONSlice[string](fields.Achievements),
		Languages:          datatypes.JSONSlice[string](fields.Languages),
		Publications:       fields.Publications,
		Volunteer:          fields.Volunteer,
		AdditionalSections: datatypes.JSONMap(fields.AdditionalSections),
		Summary:            fields.Summary,
		RawText:            truncateRunes(text, MaxRawTextChars),
	}
	profile.Normalize()

	return profile
}
