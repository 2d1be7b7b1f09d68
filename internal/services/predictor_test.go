package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-predictor/internal/models"
)

func TestPredictSendsResumeAsMultipart(t *testing.T) {
	var (
		gotField   []byte
		gotName    string
		gotType    string
		gotRequest string
		gotMethod  string
		gotPath    string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotRequest = r.Header.Get("X-Request-ID")

		file, header, err := r.FormFile("resume")
		if err != nil {
			http.Error(w, `{"error":"Resume file is required"}`, http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotField, _ = io.ReadAll(file)
		gotName = header.Filename
		gotType = header.Header.Get("Content-Type")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_resume":true,"ats_score":92,"verdict":"Excellent","issues":[],"suggestions":["Add more keywords"],"experience_years":3.5}`))
	}))
	defer server.Close()

	predictor := NewPredictorService(server.URL+"/api/predict/", 0)
	result, err := predictor.Predict(context.Background(), testResume, "req-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/predict/", gotPath)
	assert.Equal(t, "req-1", gotRequest)
	assert.Equal(t, "cv.pdf", gotName)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, testResume.Data, gotField)

	assert.Equal(t, 92, result.ATSScore)
	assert.Equal(t, "Excellent", result.Verdict)
	assert.Empty(t, result.Issues)
	assert.Equal(t, []string{"Add more keywords"}, result.Suggestions)
	assert.Contains(t, string(result.Payload), `"experience_years":3.5`)
}

func TestPredictUsesServerErrorText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Unsupported file type"}`))
	}))
	defer server.Close()

	_, err := NewPredictorService(server.URL, 0).Predict(context.Background(), testResume, "")
	require.Error(t, err)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
	assert.Equal(t, "Unsupported file type", remoteErr.DisplayMessage())
}

func TestPredictFallsBackToGenericMessage(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx without body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "non-2xx with html body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("<html>down</html>"))
			},
		},
		{
			name: "2xx malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
		},
		{
			name: "2xx score out of range",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"ats_score":140,"verdict":"?"}`))
			},
		},
		{
			name: "2xx without score",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"verdict":"?"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewPredictorService(server.URL, 0).Predict(context.Background(), testResume, "")
			require.Error(t, err)
			assert.Equal(t, models.MessageAnalysisFailed, DisplayMessage(err))
		})
	}
}

func TestPredictNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewPredictorService(url, 0).Predict(context.Background(), testResume, "")
	require.Error(t, err)
	assert.Equal(t, models.MessageAnalysisFailed, DisplayMessage(err))
}

func TestPredictRespectsTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewPredictorService(server.URL, 50*time.Millisecond).Predict(context.Background(), testResume, "")
	require.Error(t, err)
	assert.Equal(t, models.MessageAnalysisFailed, DisplayMessage(err))
}

func TestParsePredictionNotAResume(t *testing.T) {
	_, err := ParsePrediction([]byte(`{"is_resume":false,"message":"File content too short to be a resume"}`))
	require.Error(t, err)
	assert.Equal(t, "File content too short to be a resume", DisplayMessage(err))
}

func TestParsePredictionRoundsScore(t *testing.T) {
	result, err := ParsePrediction([]byte(`{"ats_score":79.6,"verdict":"Good"}`))
	require.NoError(t, err)
	assert.Equal(t, 80, result.ATSScore)
	assert.NotNil(t, result.Issues)
	assert.NotNil(t, result.Suggestions)
}
