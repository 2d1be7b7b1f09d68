package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-predictor/internal/metrics"
	"alfredoptarigan/resume-predictor/internal/models"
	"alfredoptarigan/resume-predictor/internal/repositories"
)

type PanelService interface {
	Dispatch(event models.PanelEvent) models.PanelState
	Snapshot() models.PanelState
	Stop()
}

type panelService struct {
	predictor      PredictorService
	submissionRepo repositories.SubmissionRepository
	metrics        *metrics.PanelMetrics

	mu     sync.Mutex
	state  models.PanelState
	cancel context.CancelFunc

	baseCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup
}

func NewPanelService(
	predictor PredictorService,
	submissionRepo repositories.SubmissionRepository,
	panelMetrics *metrics.PanelMetrics,
) PanelService {
	baseCtx, stop := context.WithCancel(context.Background())

	return &panelService{
		predictor:      predictor,
		submissionRepo: submissionRepo,
		metrics:        panelMetrics,
		state:          models.NewPanelState(),
		baseCtx:        baseCtx,
		stop:           stop,
	}
}

// Dispatch implements PanelService.
func (s *panelService) Dispatch(event models.PanelEvent) models.PanelState {
	s.mu.Lock()
	next, effect := Reduce(s.state, event)
	s.state = next

	if effect.CancelInFlight && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if effect.Submit != nil {
		s.startLocked(*effect.Submit)
	}
	snapshot := s.state
	s.mu.Unlock()

	switch {
	case effect.Rejected:
		log.Println("⚠️  Submit rejected: no resume selected")
		s.metrics.RecordSubmission("rejected")
	case effect.CancelInFlight:
		log.Println("🧹 Panel cleared, in-flight prediction cancelled")
	}

	return snapshot
}

// Snapshot implements PanelService.
func (s *panelService) Snapshot() models.PanelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stop implements PanelService.
func (s *panelService) Stop() {
	log.Println("🛑 Stopping panel...")
	s.stop()
	s.wg.Wait()
	log.Println("✅ Panel stopped")
}

func (s *panelService) startLocked(cmd SubmitCommand) {
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx, cancel, cmd)
}

func (s *panelService) run(ctx context.Context, cancel context.CancelFunc, cmd SubmitCommand) {
	defer s.wg.Done()
	defer cancel()

	submissionID := uuid.New()
	if err := s.submissionRepo.Create(&models.Submission{
		ID:          submissionID,
		Filename:    cmd.File.Name,
		ContentType: cmd.File.ContentType,
		SizeBytes:   cmd.File.Size(),
		Generation:  cmd.Generation,
		Status:      models.SubmissionPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}); err != nil {
		log.Printf("⚠️  Failed to record submission %s: %v\n", submissionID, err)
	}

	log.Printf("📤 Submitting %s (%d bytes) as request %s\n", cmd.File.Name, cmd.File.Size(), submissionID)

	done := s.metrics.TrackPrediction()
	result, err := s.predictor.Predict(ctx, cmd.File, submissionID.String())
	done()

	var event models.PanelEvent
	if err != nil {
		event = models.PredictionFailed{Generation: cmd.Generation, Message: DisplayMessage(err)}
	} else {
		event = models.PredictionSucceeded{Generation: cmd.Generation, Result: *result}
	}

	s.mu.Lock()
	next, effect := Reduce(s.state, event)
	s.state = next
	if !effect.Stale {
		s.cancel = nil
	}
	s.mu.Unlock()

	s.finish(submissionID, effect.Stale, result, err)
}

func (s *panelService) finish(id uuid.UUID, stale bool, result *models.PredictionResult, err error) {
	switch {
	case stale:
		log.Printf("🗑️  Discarding stale response for request %s\n", id)
		s.metrics.RecordSubmission("discarded")
		if repoErr := s.submissionRepo.MarkDiscarded(id); repoErr != nil {
			log.Printf("⚠️  Failed to update submission %s: %v\n", id, repoErr)
		}

	case err != nil:
		log.Printf("❌ Prediction %s failed: %v\n", id, err)
		s.metrics.RecordSubmission("failed")
		if repoErr := s.submissionRepo.MarkFailed(id, DisplayMessage(err)); repoErr != nil {
			log.Printf("⚠️  Failed to update submission %s: %v\n", id, repoErr)
		}

	default:
		log.Printf("✅ Prediction %s scored %d/100\n", id, result.ATSScore)
		s.metrics.RecordSubmission("succeeded")
		s.metrics.RecordScore(result.ATSScore)
		if repoErr := s.submissionRepo.MarkSucceeded(id, result); repoErr != nil {
			log.Printf("⚠️  Failed to update submission %s: %v\n", id, repoErr)
		}
	}
}

// DisplayMessage is the error slot text for any prediction failure.
func DisplayMessage(err error) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.DisplayMessage()
	}
	return models.MessageAnalysisFailed
}
