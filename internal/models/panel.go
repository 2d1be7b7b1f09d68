package models

type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseFileSelected Phase = "file_selected"
	PhaseSubmitting   Phase = "submitting"
	PhaseSucceeded    Phase = "succeeded"
	PhaseFailed       Phase = "failed"
)

const (
	MessageNoFile         = "Please upload a resume file."
	MessageAnalysisFailed = "Resume analysis failed. Try again."
)

// SelectedFile is the resume held by the panel between selection and submit.
type SelectedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

func (f *SelectedFile) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// PanelState is the single source of truth for the submission panel.
// Result and Error are only ever replaced as a whole.
type PanelState struct {
	Phase      Phase             `json:"phase"`
	File       *SelectedFile     `json:"file,omitempty"`
	Error      string            `json:"error,omitempty"`
	Result     *PredictionResult `json:"result,omitempty"`
	Generation uint64            `json:"generation"`
}

func NewPanelState() PanelState {
	return PanelState{Phase: PhaseIdle}
}

// PanelEvent is a message dispatched to the panel. The shell emits only ClearRequested.
type PanelEvent interface {
	panelEvent()
}

type FileChosen struct {
	File SelectedFile
}

type SubmitRequested struct{}

type ClearRequested struct{}

type PredictionSucceeded struct {
	Generation uint64
	Result     PredictionResult
}

type PredictionFailed struct {
	Generation uint64
	Message    string
}

func (FileChosen) panelEvent()          {}
func (SubmitRequested) panelEvent()     {}
func (ClearRequested) panelEvent()      {}
func (PredictionSucceeded) panelEvent() {}
func (PredictionFailed) panelEvent()    {}
