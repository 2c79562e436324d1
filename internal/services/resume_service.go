package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
	"github.com/vis-hal-git/Ai-interviewer/internal/models"
	"github.com/vis-hal-git/Ai-interviewer/internal/repositories"
)

type ResumeService interface {
	// Upload stores and parses file, then replaces every earlier profile of
	// userID with the new one.
	Upload(ctx context.Context, userID, jobRole string, file *multipart.FileHeader) (*models.UploadResumeResponse, error)
	Get(ctx context.Context, userID, profileID string) (*models.Profile, error)
	List(ctx context.Context, userID string) ([]models.Profile, error)
	Delete(ctx context.Context, userID, profileID string) error
}

type resumeService struct {
	profiles repositories.ProfileRepository
	storage  StorageService
	parser   ResumeParser
	now      func() time.Time
}

func NewResumeService(profiles repositories.ProfileRepository, storage StorageService, parser ResumeParser) ResumeService {
	return &resumeService{
		profiles: profiles,
		storage:  storage,
		parser:   parser,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *resumeService) Upload(ctx context.Context, userID, jobRole string, file *multipart.FileHeader) (*models.UploadResumeResponse, error) {
	stored, err := s.storage.SaveFile(file, userID)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("file", stored.Filename).Msg("📄 Parsing resume")
	profile := s.parser.Parse(ctx, stored.Path)

	now := s.now()
	profile.ID = uuid.New()
	profile.UserID = userID
	profile.JobRole = jobRole
	profile.Filename = stored.Filename
	profile.FilePath = stored.Path
	profile.FileSize = stored.Size
	profile.UploadedAt = now
	profile.CreatedAt = now
	profile.UpdatedAt = now

	superseded, err := s.profiles.ReplaceForUser(ctx, profile)
	if err != nil {
		if derr := s.storage.DeleteFile(stored.Path); derr != nil {
			logger.Warn().Err(derr).Str("file", stored.Path).Msg("failed to clean up stored resume")
		}
		return nil, err
	}

	for _, old := range superseded {
		if old.FilePath == stored.Path {
			continue
		}
		if err := s.storage.DeleteFile(old.FilePath); err != nil {
			logger.Warn().Err(err).Str("file", old.FilePath).Msg("failed to remove superseded resume file")
		}
	}

	logger.Info().
		Str("profile_id", profile.ID.String()).
		Int("superseded", len(superseded)).
		Int("skills", len(profile.Skills)).
		Msg("✅ Resume saved")

	return &models.UploadResumeResponse{
		Success:           true,
		Message:           "Resume uploaded and parsed successfully!",
		ResumeID:          profile.ID.String(),
		ExtractedData:     profile,
		CanStartInterview: len(profile.Skills) > 0,
	}, nil
}

func (s *resumeService) Get(ctx context.Context, userID, profileID string) (*models.Profile, error) {
	id, err := uuid.Parse(profileID)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", profileID, ErrNotFound)
	}

	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if profile.UserID != userID {
		return nil, fmt.Errorf("profile %s: %w", id, ErrForbidden)
	}

	return profile, nil
}

func (s *resumeService) List(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.profiles.FindByUser(ctx, userID)
}

func (s *resumeService) Delete(ctx context.Context, userID, profileID string) error {
	profile, err := s.Get(ctx, userID, profileID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteFile(profile.FilePath); err != nil {
		logger.Warn().Err(err).Str("file", profile.FilePath).Msg("failed to remove resume file")
	}

	if err := s.profiles.Delete(ctx, profile.ID); err != nil {
		return translateRepoError(err)
	}

	return nil
}
