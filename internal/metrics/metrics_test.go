package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSubmission(t *testing.T) {
	m := NewPanelMetrics()

	m.RecordSubmission("succeeded")
	m.RecordSubmission("succeeded")
	m.RecordSubmission("")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissionsTotal.WithLabelValues("unknown")))
}

func TestTrackPrediction(t *testing.T) {
	m := NewPanelMetrics()

	done := m.TrackPrediction()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictionInFlight))

	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.predictionInFlight))
}

func TestMiddlewareLabelsByRoute(t *testing.T) {
	m := NewPanelMetrics()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/files/:name", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/files/cv.pdf", nil))
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/files/:name", "204")))
}
