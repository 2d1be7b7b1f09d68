package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-predictor/internal/models"
	"alfredoptarigan/resume-predictor/internal/repositories"
)

type HistoryHandler struct {
	submissionRepo repositories.SubmissionRepository
	limit          int
}

func NewHistoryHandler(submissionRepo repositories.SubmissionRepository, limit int) *HistoryHandler {
	if limit <= 0 {
		limit = 20
	}
	return &HistoryHandler{
		submissionRepo: submissionRepo,
		limit:          limit,
	}
}

// HandleGetHistory handles GET /api/v1/history
func (h *HistoryHandler) HandleGetHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", h.limit)
	if limit <= 0 || limit > h.limit {
		limit = h.limit
	}

	submissions, err := h.submissionRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load submission history",
		})
	}

	return c.JSON(models.HistoryResponse{
		Submissions: submissions,
		Count:       len(submissions),
	})
}
