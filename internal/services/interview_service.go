package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/vis-hal-git/Ai-interviewer/internal/logger"
	"github.com/vis-hal-git/Ai-interviewer/internal/models"
	"github.com/vis-hal-git/Ai-interviewer/internal/repositories"
)

const (
	recentInterviewLimit    = 5
	previousQuestionDefault = "the previous question"
)

type InterviewService interface {
	Start(ctx context.Context, userID string, req models.StartInterviewRequest) (*models.StartInterviewResponse, error)
	Get(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error)
	UpdateStatus(ctx context.Context, userID, sessionID string, status models.InterviewStatus) (*models.InterviewSession, error)
	// SubmitAnswer appends a response whatever the session status is.
	SubmitAnswer(ctx context.Context, userID, sessionID string, req models.SubmitAnswerRequest) (*models.Response, error)
	FollowUp(ctx context.Context, userID, sessionID string, req models.FollowUpRequest) (string, error)
	Complete(ctx context.Context, userID, sessionID string) (*models.CompleteInterviewResponse, error)
	Stats(ctx context.Context, userID string) (*models.StatsResponse, error)
}

type interviewService struct {
	sessions      repositories.InterviewRepository
	profiles      repositories.ProfileRepository
	questions     QuestionGenerator
	followUps     FollowUpGenerator
	questionCount int
	now           func() time.Time
}

func NewInterviewService(
	sessions repositories.InterviewRepository,
	profiles repositories.ProfileRepository,
	questions QuestionGenerator,
	followUps FollowUpGenerator,
	questionCount int,
) InterviewService {
	if questionCount <= 0 {
		questionCount = DefaultQuestionCount
	}
	return &interviewService{
		sessions:      sessions,
		profiles:      profiles,
		questions:     questions,
		followUps:     followUps,
		questionCount: questionCount,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *interviewService) Start(ctx context.Context, userID string, req models.StartInterviewRequest) (*models.StartInterviewResponse, error) {
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", req.ProfileID, ErrNotFound)
	}

	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if profile.UserID != userID {
		return nil, fmt.Errorf("profile %s: %w", profileID, ErrForbidden)
	}

	questions := s.questions.Generate(ctx, profile, req.JobRole, s.questionCount)
	for i := range questions {
		questions[i].ID = uuid.NewString()
	}

	now := s.now()
	session := &models.InterviewSession{
		ID:                  uuid.New(),
		SessionID:           uuid.NewString(),
		UserID:              userID,
		ProfileID:           profile.ID,
		JobRole:             req.JobRole,
		Status:              models.StatusPending,
		Questions:           datatypes.JSONSlice[models.Question](questions),
		Responses:           datatypes.JSONSlice[models.Response]{},
		ConversationHistory: datatypes.JSONSlice[models.ConversationEntry]{},
		MonitoringLogs:      datatypes.JSONSlice[models.MonitoringEvent]{},
		AnomalyIncidents:    datatypes.JSONSlice[models.AnomalyIncident]{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	logger.Info().
		Str("session_id", session.SessionID).
		Str("job_role", req.JobRole).
		Int("questions", len(questions)).
		Msg("✅ Interview session created")

	return &models.StartInterviewResponse{
		SessionID:      session.SessionID,
		QuestionsCount: len(questions),
		JobRole:        req.JobRole,
		Status:         session.Status,
	}, nil
}

func (s *interviewService) Get(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error) {
	return s.loadOwned(ctx, userID, sessionID)
}

func (s *interviewService) UpdateStatus(ctx context.Context, userID, sessionID string, status models.InterviewStatus) (*models.InterviewSession, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, session, status); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *interviewService) Complete(ctx context.Context, userID, sessionID string) (*models.CompleteInterviewResponse, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, session, models.StatusCompleted); err != nil {
		return nil, err
	}

	logger.Info().Str("session_id", sessionID).Msg("✅ Interview completed")

	return &models.CompleteInterviewResponse{
		SessionID:      session.SessionID,
		Duration:       session.DurationSeconds,
		ResponsesCount: len(session.Responses),
	}, nil
}

// transition persists status and its timestamps, then mirrors them onto
// session. start_time and end_time are written only once.
func (s *interviewService) transition(ctx context.Context, session *models.InterviewSession, status models.InterviewStatus) error {
	now := s.now()
	update := &repositories.StatusUpdateData{
		Status:    status,
		UpdatedAt: now,
	}

	switch status {
	case models.StatusInProgress:
		if session.StartTime == nil {
			update.StartTime = &now
		}
	case models.StatusCompleted:
		if session.EndTime == nil {
			update.EndTime = &now
			if session.StartTime != nil {
				duration := int(now.Sub(*session.StartTime).Seconds())
				update.DurationSeconds = &duration
			}
		}
	}

	if err := s.sessions.UpdateStatus(ctx, session.SessionID, update); err != nil {
		return translateRepoError(err)
	}

	session.Status = status
	session.UpdatedAt = now
	if update.StartTime != nil {
		session.StartTime = update.StartTime
	}
	if update.EndTime != nil {
		session.EndTime = update.EndTime
	}
	if update.DurationSeconds != nil {
		session.DurationSeconds = update.DurationSeconds
	}
	return nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, userID, sessionID string, req models.SubmitAnswerRequest) (*models.Response, error) {
	if _, err := s.loadOwned(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	response := models.Response{
		QuestionID:       req.QuestionID,
		QuestionText:     req.Question,
		AnswerText:       req.Answer,
		TimeTakenSeconds: req.TimeTaken,
		Timestamp:        s.now(),
	}

	if err := s.sessions.AppendResponse(ctx, sessionID, response); err != nil {
		return nil, translateRepoError(err)
	}

	logger.Debug().Str("session_id", sessionID).Str("question_id", req.QuestionID).Msg("answer recorded")
	return &response, nil
}

func (s *interviewService) FollowUp(ctx context.Context, userID, sessionID string, req models.FollowUpRequest) (string, error) {
	session, err := s.loadOwned(ctx, userID, sessionID)
	if err != nil {
		return "", err
	}

	question := resolveQuestionText(session.Questions, req.QuestionID)
	followUp := s.followUps.Generate(ctx, question, req.Answer, session.JobRole)

	entry := models.ConversationEntry{
		Type:      models.ConversationFollowUp,
		Question:  followUp,
		Timestamp: s.now(),
	}
	if err := s.sessions.AppendConversation(ctx, sessionID, entry); err != nil {
		return "", translateRepoError(err)
	}

	return followUp, nil
}

// resolveQuestionText looks questionID up by identifier, then as a numeric
// index, and falls back to a generic placeholder.
func resolveQuestionText(questions []models.Question, questionID string) string {
	for _, q := range questions {
		if q.ID != "" && q.ID == questionID {
			return q.Text
		}
	}

	if idx, err := strconv.Atoi(questionID); err == nil && idx >= 0 && idx < len(questions) {
		if questions[idx].Text != "" {
			return questions[idx].Text
		}
	}

	return previousQuestionDefault
}

func (s *interviewService) Stats(ctx context.Context, userID string) (*models.StatsResponse, error) {
	sessions, err := s.sessions.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		stats      models.InterviewStats
		scoreSum   float64
		scoreCount int
		categories = make(map[models.QuestionCategory]struct{})
	)

	stats.TotalInterviews = len(sessions)
	for _, session := range sessions {
		switch session.Status {
		case models.StatusCompleted:
			stats.CompletedInterviews++
			if session.OverallScore != nil {
				scoreSum += *session.OverallScore
				scoreCount++
			}
		case models.StatusInProgress:
			stats.InProgressInterviews++
			stats.PendingInterviews++
		case models.StatusPending:
			stats.PendingInterviews++
		}

		for _, q := range session.Questions {
			if q.Category != "" {
				categories[q.Category] = struct{}{}
			}
		}
	}

	if scoreCount > 0 {
		stats.AverageScore = math.Round(scoreSum/float64(scoreCount)*10) / 10
	}
	stats.SkillsAssessed = len(categories)

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	if len(sessions) > recentInterviewLimit {
		sessions = sessions[:recentInterviewLimit]
	}

	recent := make([]models.InterviewSummary, 0, len(sessions))
	for _, session := range sessions {
		recent = append(recent, models.InterviewSummary{
			ID:             session.ID.String(),
			SessionID:      session.SessionID,
			Position:       session.JobRole,
			Date:           session.CreatedAt,
			Status:         session.Status,
			Score:          session.OverallScore,
			Duration:       session.DurationSeconds,
			ResponsesCount: len(session.Responses),
		})
	}

	return &models.StatsResponse{
		Stats:            stats,
		RecentInterviews: recent,
	}, nil
}

func (s *interviewService) loadOwned(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error) {
	session, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("interview session %s: %w", sessionID, ErrForbidden)
	}
	return session, nil
}

// translateRepoError maps repository misses onto ErrNotFound.
func translateRepoError(err error) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	}
	return err
}
