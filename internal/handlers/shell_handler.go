package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-predictor/internal/models"
	"alfredoptarigan/resume-predictor/internal/services"
)

// ShellHandler serves the navigation bar. Its only action is Clear.
type ShellHandler struct {
	panel services.PanelService
}

func NewShellHandler(panel services.PanelService) *ShellHandler {
	return &ShellHandler{
		panel: panel,
	}
}

// HandleClear handles POST /clear and POST /api/v1/panel/clear
func (h *ShellHandler) HandleClear(c *fiber.Ctx) error {
	state := h.panel.Dispatch(models.ClearRequested{})
	return respond(c, state)
}
