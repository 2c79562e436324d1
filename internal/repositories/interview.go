package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vis-hal-git/Ai-interviewer/internal/models"
)

type InterviewRepository interface {
	Create(ctx context.Context, session *models.InterviewSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	// FindByUser returns the user's sessions, newest first.
	FindByUser(ctx context.Context, userID string) ([]models.InterviewSession, error)
	UpdateStatus(ctx context.Context, sessionID string, data *StatusUpdateData) error
	AppendResponse(ctx context.Context, sessionID string, response models.Response) error
	AppendConversation(ctx context.Context, sessionID string, entry models.ConversationEntry) error
}

// StatusUpdateData is a field set for one status transition. Nil pointers
// leave the stored column untouched.
type StatusUpdateData struct {
	Status          models.InterviewStatus
	StartTime       *time.Time
	EndTime         *time.Time
	DurationSeconds *int
	UpdatedAt       time.Time
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, session *models.InterviewSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create interview session: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview session %s: %w", sessionID, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to find interview session: %w", err)
	}
	return &session, nil
}

func (r *interviewRepository) FindByUser(ctx context.Context, userID string) ([]models.InterviewSession, error) {
	var sessions []models.InterviewSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to find interview sessions: %w", err)
	}
	return sessions, nil
}

func (r *interviewRepository) UpdateStatus(ctx context.Context, sessionID string, data *StatusUpdateData) error {
	updates := map[string]interface{}{
		"status":     data.Status,
		"updated_at": data.UpdatedAt,
	}

	if data.StartTime != nil {
		updates["start_time"] = *data.StartTime
	}
	if data.EndTime != nil {
		updates["end_time"] = *data.EndTime
	}
	if data.DurationSeconds != nil {
		updates["duration_seconds"] = *data.DurationSeconds
	}

	result := r.db.WithContext(ctx).Model(&models.InterviewSession{}).
		Where("session_id = ?", sessionID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update interview status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("interview session %s: %w", sessionID, ErrRecordNotFound)
	}

	return nil
}

func (r *interviewRepository) AppendResponse(ctx context.Context, sessionID string, response models.Response) error {
	return r.appendJSON(ctx, sessionID, "responses", []models.Response{response}, response.Timestamp)
}

func (r *interviewRepository) AppendConversation(ctx context.Context, sessionID string, entry models.ConversationEntry) error {
	return r.appendJSON(ctx, sessionID, "conversation_history", []models.ConversationEntry{entry}, entry.Timestamp)
}

// appendJSON concatenates items onto a jsonb array column in a single UPDATE,
// so concurrent appends to the same session never overwrite each other.
func (r *interviewRepository) appendJSON(ctx context.Context, sessionID, column string, items interface{}, at time.Time) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s entry: %w", column, err)
	}

	result := r.db.WithContext(ctx).Model(&models.InterviewSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			column:       gorm.Expr(fmt.Sprintf("COALESCE(%s, '[]'::jsonb) || ?::jsonb", column), string(payload)),
			"updated_at": at,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to append %s entry: %w", column, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("interview session %s: %w", sessionID, ErrRecordNotFound)
	}

	return nil
}
