package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vis-hal-git/Ai-interviewer/internal/middleware"
	"github.com/vis-hal-git/Ai-interviewer/internal/models"
	"github.com/vis-hal-git/Ai-interviewer/internal/services"
)

type InterviewHandler struct {
	interviews services.InterviewService
}

func NewInterviewHandler(interviews services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviews: interviews,
	}
}

func (h *InterviewHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.interviews.Stats(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "failed to fetch statistics")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.interviews.Start(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err, "failed to start interview")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Interview session created successfully",
		"data":    resp,
	})
}

func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	session, err := h.interviews.Get(c.UserContext(), middleware.UserID(c), c.Params("session_id"))
	if err != nil {
		return respondError(c, err, "failed to fetch interview")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    session,
	})
}

func (h *InterviewHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "status is required")
	}

	sessionID := c.Params("session_id")
	session, err := h.interviews.UpdateStatus(c.UserContext(), middleware.UserID(c), sessionID, models.InterviewStatus(req.Status))
	if err != nil {
		return respondError(c, err, "failed to update interview status")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Interview status updated to " + string(session.Status),
		"data": fiber.Map{
			"session_id": session.SessionID,
			"status":     session.Status,
		},
	})
}

func (h *InterviewHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	var req models.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	response, err := h.interviews.SubmitAnswer(c.UserContext(), middleware.UserID(c), c.Params("session_id"), req)
	if err != nil {
		return respondError(c, err, "failed to submit answer")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Answer submitted successfully",
		"data":    response,
	})
}

func (h *InterviewHandler) HandleFollowUp(c *fiber.Ctx) error {
	var req models.FollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	followUp, err := h.interviews.FollowUp(c.UserContext(), middleware.UserID(c), c.Params("session_id"), req)
	if err != nil {
		return respondError(c, err, "failed to generate follow-up")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"follow_up": followUp,
	})
}

func (h *InterviewHandler) HandleComplete(c *fiber.Ctx) error {
	resp, err := h.interviews.Complete(c.UserContext(), middleware.UserID(c), c.Params("session_id"))
	if err != nil {
		return respondError(c, err, "failed to complete interview")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Interview completed successfully",
		"data":    resp,
	})
}
