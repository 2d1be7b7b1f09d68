package services

import "alfredoptarigan/resume-predictor/internal/models"

// Effect is what the store must do after a transition.
type Effect struct {
	// Submit is set when a prediction request must be issued.
	Submit *SubmitCommand
	// CancelInFlight aborts the outstanding request, if any.
	CancelInFlight bool
	// Stale reports a completion that was dropped because a Clear or a
	// newer submit superseded it.
	Stale bool
	// Rejected reports a submit that failed local validation.
	Rejected bool
}

type SubmitCommand struct {
	Generation uint64
	File       models.SelectedFile
}

// Reduce applies one event to the panel state. It has no side effects.
func Reduce(state models.PanelState, event models.PanelEvent) (models.PanelState, Effect) {
	switch ev := event.(type) {
	case models.FileChosen:
		if state.Phase == models.PhaseSubmitting {
			return state, Effect{}
		}
		file := ev.File
		state.File = &file
		state.Phase = models.PhaseFileSelected
		return state, Effect{}

	case models.SubmitRequested:
		if state.Phase == models.PhaseSubmitting {
			return state, Effect{}
		}
		state.Result = nil
		if state.File == nil {
			state.Error = models.MessageNoFile
			return state, Effect{Rejected: true}
		}
		state.Error = ""
		state.Generation++
		state.Phase = models.PhaseSubmitting
		return state, Effect{Submit: &SubmitCommand{
			Generation: state.Generation,
			File:       *state.File,
		}}

	case models.ClearRequested:
		inFlight := state.Phase == models.PhaseSubmitting
		return models.PanelState{
			Phase:      models.PhaseIdle,
			Generation: state.Generation + 1,
		}, Effect{CancelInFlight: inFlight}

	case models.PredictionSucceeded:
		if !awaiting(state, ev.Generation) {
			return state, Effect{Stale: true}
		}
		result := ev.Result
		state.Result = &result
		state.Error = ""
		state.Phase = models.PhaseSucceeded
		return state, Effect{}

	case models.PredictionFailed:
		if !awaiting(state, ev.Generation) {
			return state, Effect{Stale: true}
		}
		state.Result = nil
		state.Error = ev.Message
		if state.Error == "" {
			state.Error = models.MessageAnalysisFailed
		}
		state.Phase = models.PhaseFailed
		return state, Effect{}
	}

	return state, Effect{}
}

func awaiting(state models.PanelState, generation uint64) bool {
	return state.Phase == models.PhaseSubmitting && state.Generation == generation
}
