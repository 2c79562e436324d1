package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vis-hal-git/Ai-interviewer/internal/middleware"
	"github.com/vis-hal-git/Ai-interviewer/internal/models"
	"github.com/vis-hal-git/Ai-interviewer/internal/services"
)

type ResumeHandler struct {
	resumes services.ResumeService
}

func NewResumeHandler(resumes services.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		resumes: resumes,
	}
}

func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	req := models.UploadResumeRequest{
		JobRole: c.FormValue("job_role"),
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "job_role is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "missing resume file in 'file' field")
	}

	resp, err := h.resumes.Upload(c.UserContext(), middleware.UserID(c), req.JobRole, file)
	if err != nil {
		return respondError(c, err, "failed to upload resume")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	profile, err := h.resumes.Get(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to get resume")
	}

	return c.JSON(profile)
}

func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	profiles, err := h.resumes.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "failed to get resumes")
	}

	return c.JSON(fiber.Map{
		"resumes": profiles,
		"count":   len(profiles),
	})
}

func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.resumes.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err, "failed to delete resume")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Resume deleted successfully",
	})
}
