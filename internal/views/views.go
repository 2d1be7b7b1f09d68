// Package views renders the navigation shell and the submission panel.
package views

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"alfredoptarigan/resume-predictor/internal/models"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	AppTitle    = "Resume Predictor System"
	PanelTitle  = "Resume ATS Score Predictor"
	Layout      = "layouts/main"
	IndexView   = "index"
	AcceptTypes = ".pdf,.docx"

	labelIdle       = "Analyze Resume"
	labelSubmitting = "Analyzing Resume..."
	noIssues        = "No major issues detected"
	noSuggestions   = "Your resume is already ATS optimized"
)

// NewEngine returns the fiber template engine backed by the embedded templates.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded templates: %w", err)
	}
	return html.NewFileSystem(http.FS(sub), ".html"), nil
}

// PanelView is everything the templates need, derived from panel state only.
type PanelView struct {
	Title       string `json:"title"`
	Phase       string `json:"phase"`
	AcceptTypes string `json:"accept_types"`

	FileName    string `json:"file_name,omitempty"`
	Busy        bool   `json:"busy"`
	ButtonLabel string `json:"button_label"`
	Error       string `json:"error,omitempty"`

	HasResult   bool     `json:"has_result"`
	Score       int      `json:"score,omitempty"`
	ScoreBadge  string   `json:"score_badge,omitempty"`
	Tier        string   `json:"tier,omitempty"`
	Verdict     string   `json:"verdict,omitempty"`
	Issues      []string `json:"issues,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func NewPanelView(state models.PanelState) PanelView {
	view := PanelView{
		Title:       AppTitle,
		Phase:       string(state.Phase),
		AcceptTypes: AcceptTypes,
		Busy:        state.Phase == models.PhaseSubmitting,
		ButtonLabel: labelIdle,
		Error:       state.Error,
	}
	if view.Busy {
		view.ButtonLabel = labelSubmitting
	}
	if state.File != nil {
		view.FileName = state.File.Name
	}

	if result := state.Result; result != nil {
		view.HasResult = true
		view.Score = result.ATSScore
		view.ScoreBadge = fmt.Sprintf("%d/100", result.ATSScore)
		view.Tier = string(models.TierFor(result.ATSScore))
		view.Verdict = result.Verdict
		view.Issues = orFallback(result.Issues, noIssues)
		view.Suggestions = orFallback(result.Suggestions, noSuggestions)
	}

	return view
}

func orFallback(items []string, fallback string) []string {
	if len(items) == 0 {
		return []string{fallback}
	}
	return items
}

// Data wraps the view for the layout template.
func Data(view PanelView) map[string]interface{} {
	return map[string]interface{}{
		"Title":      view.Title,
		"PanelTitle": PanelTitle,
		"Panel":      view,
	}
}
