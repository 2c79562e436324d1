package models

import "time"

type UploadResumeRequest struct {
	JobRole string `form:"job_role" validate:"required,max=200"`
}

type UploadResumeResponse struct {
	Success           bool     `json:"success"`
	Message           string   `json:"message"`
	ResumeID          string   `json:"resume_id"`
	ExtractedData     *Profile `json:"extracted_data"`
	CanStartInterview bool     `json:"can_start_interview"`
}

type StartInterviewRequest struct {
	ProfileID string `json:"candidate_id" validate:"required,uuid"`
	JobRole   string `json:"job_role" validate:"required,max=200"`
}

type StartInterviewResponse struct {
	SessionID      string          `json:"session_id"`
	QuestionsCount int             `json:"questions_count"`
	JobRole        string          `json:"job_role"`
	Status         InterviewStatus `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	TimeTaken  int    `json:"time_taken" validate:"gte=0"`
}

type FollowUpRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer" validate:"required"`
}

type CompleteInterviewResponse struct {
	SessionID      string `json:"session_id"`
	Duration       *int   `json:"duration"`
	ResponsesCount int    `json:"responses_count"`
}

type InterviewStats struct {
	TotalInterviews      int     `json:"total_interviews"`
	CompletedInterviews  int     `json:"completed_interviews"`
	InProgressInterviews int     `json:"in_progress_interviews"`
	PendingInterviews    int     `json:"pending_interviews"`
	AverageScore         float64 `json:"average_score"`
	SkillsAssessed       int     `json:"skills_assessed"`
}

type InterviewSummary struct {
	ID             string          `json:"id"`
	SessionID      string          `json:"session_id"`
	Position       string          `json:"position"`
	Date           time.Time       `json:"date"`
	Status         InterviewStatus `json:"status"`
	Score          *float64        `json:"score"`
	Duration       *int            `json:"duration"`
	ResponsesCount int             `json:"responses_count"`
}

type StatsResponse struct {
	Stats            InterviewStats     `json:"stats"`
	RecentInterviews []InterviewSummary `json:"recent_interviews"`
}
