package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InterviewStatus string

const (
	StatusPending    InterviewStatus = "pending"
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
)

func (s InterviewStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type QuestionCategory string

const (
	CategoryGeneral    QuestionCategory = "general"
	CategoryTechnical  QuestionCategory = "technical"
	CategoryBehavioral QuestionCategory = "behavioral"
)

type Question struct {
	ID           string           `json:"id,omitempty"`
	Text         string           `json:"question" validate:"required"`
	Category     QuestionCategory `json:"category" validate:"required,oneof=general technical behavioral"`
	Difficulty   string           `json:"difficulty" validate:"required,oneof=easy medium hard"`
	SkillsTested StringList       `json:"skills_tested"`
}

type Response struct {
	QuestionID       string    `json:"question_id"`
	QuestionText     string    `json:"question"`
	AnswerText       string    `json:"answer"`
	TimeTakenSeconds int       `json:"time_taken"`
	Timestamp        time.Time `json:"timestamp"`
}

const ConversationFollowUp = "follow_up"

type ConversationEntry struct {
	Type      string    `json:"type"`
	Question  string    `json:"question"`
	Timestamp time.Time `json:"timestamp"`
}

// MonitoringEvent and AnomalyIncident are reserved for proctoring; nothing
// writes them yet.
type MonitoringEvent struct {
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type AnomalyIncident struct {
	Kind      string    `json:"kind"`
	Severity  string    `json:"severity,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type InterviewSession struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID string          `gorm:"type:text;not null;uniqueIndex" json:"session_id"`
	UserID    string          `gorm:"type:text;not null;index" json:"user_id"`
	ProfileID uuid.UUID       `gorm:"type:uuid;not null" json:"profile_id"`
	JobRole   string          `gorm:"type:text" json:"job_role"`
	Status    InterviewStatus `gorm:"type:text;not null;default:'pending'" json:"status"`

	Questions           datatypes.JSONSlice[Question]          `json:"questions"`
	Responses           datatypes.JSONSlice[Response]          `json:"responses"`
	ConversationHistory datatypes.JSONSlice[ConversationEntry] `json:"conversation_history"`
	MonitoringLogs      datatypes.JSONSlice[MonitoringEvent]   `json:"monitoring_logs"`
	AnomalyIncidents    datatypes.JSONSlice[AnomalyIncident]   `json:"anomaly_incidents"`

	CurrentQuestionIndex int      `gorm:"not null;default:0" json:"current_question_index"`
	OverallScore         *float64 `json:"overall_score,omitempty"`

	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationSeconds *int       `json:"duration,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}
