package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"alfredoptarigan/resume-predictor/internal/models"
)

const resumeField = "resume"

// maxResponseBytes caps how much of a reply is read.
const maxResponseBytes = 4 << 20

type PredictorService interface {
	Predict(ctx context.Context, file models.SelectedFile, requestID string) (*models.PredictionResult, error)
}

// RemoteError is any failure of the prediction call. Message holds the text
// the server supplied for display, if any.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("prediction request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("prediction rejected (status %d): %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("prediction rejected (status %d)", e.StatusCode)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// DisplayMessage is the text shown in the panel's error slot.
func (e *RemoteError) DisplayMessage() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return models.MessageAnalysisFailed
}

type predictorService struct {
	endpoint string
	client   *http.Client
}

// NewPredictorService builds the client. A zero timeout means none.
func NewPredictorService(endpoint string, timeout time.Duration) PredictorService {
	return &predictorService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *predictorService) Predict(ctx context.Context, file models.SelectedFile, requestID string) (*models.PredictionResult, error) {
	body, contentType, err := buildResumeForm(file)
	if err != nil {
		return nil, &RemoteError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, body)
	if err != nil {
		return nil, &RemoteError{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &RemoteError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    errorText(raw),
		}
	}

	result, err := ParsePrediction(raw)
	if err != nil {
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) {
			remoteErr.StatusCode = resp.StatusCode
			return nil, remoteErr
		}
		return nil, &RemoteError{StatusCode: resp.StatusCode, Err: err}
	}

	return result, nil
}

func buildResumeForm(file models.SelectedFile) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		resumeField, escapeQuotes(file.Name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

type predictionBody struct {
	ATSScore    *float64 `json:"ats_score"`
	Verdict     string   `json:"verdict"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Message     string   `json:"message"`
}

// ParsePrediction decodes a 2xx reply. A body without ats_score is a failure;
// the backend's "not a resume" reply carries its reason in message.
func ParsePrediction(raw []byte) (*models.PredictionResult, error) {
	var body predictionBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("malformed prediction response: %w", err)
	}

	if body.ATSScore == nil {
		return nil, &RemoteError{Message: body.Message}
	}

	score := *body.ATSScore
	if math.IsNaN(score) || score < 0 || score > 100 {
		return nil, fmt.Errorf("ats_score out of range: %v", score)
	}

	issues := body.Issues
	if issues == nil {
		issues = []string{}
	}
	suggestions := body.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}

	payload := make(json.RawMessage, len(raw))
	copy(payload, raw)

	return &models.PredictionResult{
		ATSScore:    int(math.Round(score)),
		Verdict:     body.Verdict,
		Issues:      issues,
		Suggestions: suggestions,
		Payload:     payload,
	}, nil
}

func errorText(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Error
}
