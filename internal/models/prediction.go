package models

import "encoding/json"

// PredictionResult is one successful reply of the prediction endpoint.
type PredictionResult struct {
	ATSScore    int             `json:"ats_score"`
	Verdict     string          `json:"verdict"`
	Issues      []string        `json:"issues"`
	Suggestions []string        `json:"suggestions"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

type Tier string

const (
	TierSuccess Tier = "success"
	TierInfo    Tier = "info"
	TierWarning Tier = "warning"
	TierDanger  Tier = "danger"
)

// TierFor maps a score onto its display band.
func TierFor(score int) Tier {
	switch {
	case score >= 80:
		return TierSuccess
	case score >= 60:
		return TierInfo
	case score >= 40:
		return TierWarning
	default:
		return TierDanger
	}
}
