package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the public health check and the authenticated
// resume and interview endpoints under api.
func RegisterRoutes(api fiber.Router, auth fiber.Handler, resumes *ResumeHandler, interviews *InterviewHandler) {
	api.Get("/health", HandleHealth)

	r := api.Group("/resumes", auth)
	r.Post("/upload", resumes.HandleUpload)
	r.Get("/user/all", resumes.HandleList)
	r.Get("/:id", resumes.HandleGet)
	r.Delete("/:id", resumes.HandleDelete)

	i := api.Group("/interviews", auth)
	i.Get("/user/stats", interviews.HandleStats)
	i.Post("/start", interviews.HandleStart)
	i.Get("/:session_id", interviews.HandleGet)
	i.Put("/:session_id/status", interviews.HandleUpdateStatus)
	i.Post("/:session_id/submit-answer", interviews.HandleSubmitAnswer)
	i.Post("/:session_id/follow-up", interviews.HandleFollowUp)
	i.Post("/:session_id/complete", interviews.HandleComplete)
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}
