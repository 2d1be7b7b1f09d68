package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-predictor/internal/models"
	"alfredoptarigan/resume-predictor/internal/services"
	"alfredoptarigan/resume-predictor/internal/views"
)

const resumeField = "resume"

type PanelHandler struct {
	panel services.PanelService
}

func NewPanelHandler(panel services.PanelService) *PanelHandler {
	return &PanelHandler{
		panel: panel,
	}
}

// HandleIndex handles GET /
func (h *PanelHandler) HandleIndex(c *fiber.Ctx) error {
	view := views.NewPanelView(h.panel.Snapshot())
	return c.Render(views.IndexView, views.Data(view), views.Layout)
}

// HandleState handles GET /api/v1/panel
func (h *PanelHandler) HandleState(c *fiber.Ctx) error {
	return c.JSON(views.NewPanelView(h.panel.Snapshot()))
}

// HandleSelect handles POST /select and POST /api/v1/panel/select
func (h *PanelHandler) HandleSelect(c *fiber.Ctx) error {
	file, ok, err := readResume(c)
	if err != nil {
		return err
	}

	state := h.panel.Snapshot()
	if ok {
		state = h.panel.Dispatch(models.FileChosen{File: *file})
	}

	return respond(c, state)
}

// HandleAnalyze handles POST /analyze and POST /api/v1/panel/analyze.
// A resume in the same post is selected before the submit.
func (h *PanelHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, ok, err := readResume(c)
	if err != nil {
		return err
	}

	if ok {
		h.panel.Dispatch(models.FileChosen{File: *file})
	}
	state := h.panel.Dispatch(models.SubmitRequested{})

	return respond(c, state)
}

// readResume returns ok=false when the post carries no file, which is not an error.
func readResume(c *fiber.Ctx) (*models.SelectedFile, bool, error) {
	header, err := c.FormFile(resumeField)
	if err != nil || header == nil || header.Filename == "" {
		return nil, false, nil
	}

	src, err := header.Open()
	if err != nil {
		return nil, false, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to open uploaded file: %v", err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, false, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to read uploaded file: %v", err))
	}

	return &models.SelectedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, true, nil
}

// respond redirects browser posts back to the page and answers API posts with JSON.
func respond(c *fiber.Ctx, state models.PanelState) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.JSON(views.NewPanelView(state))
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
