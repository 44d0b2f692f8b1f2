package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hostel-portal-api/internal/dto"
	"github.com/noah-isme/hostel-portal-api/internal/models"
	"github.com/noah-isme/hostel-portal-api/internal/upstream"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
	"github.com/noah-isme/hostel-portal-api/pkg/poll"
)

type allocationClient interface {
	PreCheck(ctx context.Context) (*models.PreAllocationCheck, error)
	AllocationStatus(ctx context.Context) (*models.AllocationJob, error)
	StartAllocation(ctx context.Context) error
	LastResult(ctx context.Context) (*models.AllocationResult, error)
}

type pollObserver interface {
	ObserveAllocationPoll(running bool)
}

// AllocationService drives the allocation run lifecycle: Idle until a start
// command, Running while the upstream batch executes (observed through a
// polling watcher), Completed once the upstream reports the run finished.
type AllocationService struct {
	client       allocationClient
	metrics      pollObserver
	logger       *zap.Logger
	pollInterval time.Duration

	mu         sync.Mutex
	starting   bool
	watcher    *poll.Watcher
	job        *models.AllocationJob
	lastResult *models.AllocationResult
	preCheck   *models.PreAllocationCheck
}

// NewAllocationService constructs the controller.
func NewAllocationService(client allocationClient, metrics pollObserver, pollInterval time.Duration, logger *zap.Logger) *AllocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &AllocationService{
		client:       client,
		metrics:      metrics,
		logger:       logger,
		pollInterval: pollInterval,
	}
}

// Load performs the initial page fetch: pre-check, last result and job
// status concurrently. A failed slice is treated as absent rather than
// failing the whole load. When the upstream reports a run already in flight,
// the watcher is (re)attached.
func (s *AllocationService) Load(ctx context.Context) (*dto.AllocationOverview, error) {
	var (
		wg       sync.WaitGroup
		preCheck *models.PreAllocationCheck
		result   *models.AllocationResult
		job      *models.AllocationJob
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if check, err := s.client.PreCheck(ctx); err != nil {
			s.logger.Sugar().Warnw("pre-check fetch failed", "error", err)
		} else {
			preCheck = check
		}
	}()
	go func() {
		defer wg.Done()
		if last, err := s.client.LastResult(ctx); err != nil {
			s.logger.Sugar().Warnw("last-result fetch failed", "error", err)
		} else {
			result = last
		}
	}()
	go func() {
		defer wg.Done()
		if status, err := s.client.AllocationStatus(ctx); err != nil {
			s.logger.Sugar().Warnw("status fetch failed", "error", err)
		} else {
			job = status
		}
	}()
	wg.Wait()

	if job == nil {
		job = &models.AllocationJob{}
	}

	s.mu.Lock()
	if preCheck != nil {
		s.preCheck = preCheck
	}
	if result != nil {
		s.lastResult = result
	}
	s.job = job
	s.mu.Unlock()

	if job.IsRunning {
		s.attachWatcher(upstream.TokenFrom(ctx))
	}

	return s.overview(), nil
}

// Start triggers a new allocation run. The precondition (approved students
// waiting, no run in flight) is enforced here; a violation is a typed error,
// never a silent no-op.
func (s *AllocationService) Start(ctx context.Context) (*dto.AllocationOverview, error) {
	// The starting flag covers the whole pre-flight-to-start window, so two
	// concurrent commands cannot both POST the start call upstream.
	s.mu.Lock()
	if s.starting || (s.watcher != nil && s.watcher.Running()) {
		s.mu.Unlock()
		return nil, appErrors.ErrAllocationRunning
	}
	s.starting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.starting = false
		s.mu.Unlock()
	}()

	job, err := s.client.AllocationStatus(ctx)
	if err != nil {
		s.logger.Sugar().Warnw("status pre-flight failed, assuming idle", "error", err)
		job = &models.AllocationJob{}
	}
	if job.IsRunning {
		return nil, appErrors.ErrAllocationRunning
	}

	check, err := s.client.PreCheck(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "pre-allocation check unavailable")
	}
	if !check.CanStart(job) {
		return nil, appErrors.ErrNoEligibleStudents
	}

	if err := s.client.StartAllocation(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.preCheck = check
	s.job = &models.AllocationJob{
		IsRunning:   true,
		Progress:    0,
		CurrentStep: "Initializing allocation process...",
	}
	s.mu.Unlock()

	s.attachWatcher(upstream.TokenFrom(ctx))
	return s.overview(), nil
}

// Status returns the current job snapshot. While the watcher runs, its most
// recent poll is authoritative; otherwise the upstream is asked directly,
// defaulting to not-running on failure.
func (s *AllocationService) Status(ctx context.Context) *models.AllocationJob {
	s.mu.Lock()
	polling := s.watcher != nil && s.watcher.Running()
	cached := s.job
	s.mu.Unlock()

	if polling && cached != nil {
		return cached
	}

	job, err := s.client.AllocationStatus(ctx)
	if err != nil {
		s.logger.Sugar().Warnw("status fetch failed", "error", err)
		if cached != nil {
			return cached
		}
		return &models.AllocationJob{}
	}

	s.mu.Lock()
	s.job = job
	s.mu.Unlock()
	return job
}

// Overview returns the last known snapshots without touching the upstream.
func (s *AllocationService) Overview() *dto.AllocationOverview {
	return s.overview()
}

// LastResult returns the most recent run outcome held in memory.
func (s *AllocationService) LastResult() *models.AllocationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// Shutdown stops any active watcher. Leaving the loop running after the
// gateway stops caring is both a leak and a correctness bug.
func (s *AllocationService) Shutdown() {
	s.mu.Lock()
	watcher := s.watcher
	s.mu.Unlock()
	if watcher != nil {
		watcher.Stop()
	}
}

// attachWatcher starts the polling loop unless one is already active. The
// caller's bearer token is carried into the background context because the
// loop outlives the originating HTTP request.
func (s *AllocationService) attachWatcher(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil && s.watcher.Running() {
		return
	}

	s.watcher = poll.NewWatcher("allocation-status", s.pollInterval, s.checkOnce, s.logger)
	ctx := upstream.WithToken(context.Background(), token)
	if err := s.watcher.Start(ctx); err != nil {
		s.logger.Sugar().Warnw("watcher start failed", "error", err)
	}
}

// checkOnce is a single poll tick. Errors keep the loop alive; observing
// isRunning=false triggers exactly one last-result and one pre-check refresh
// before the loop ends.
func (s *AllocationService) checkOnce(ctx context.Context) (bool, error) {
	job, err := s.client.AllocationStatus(ctx)
	if err != nil {
		return false, err
	}

	if s.metrics != nil {
		s.metrics.ObserveAllocationPoll(job.IsRunning)
	}

	s.mu.Lock()
	s.job = job
	s.mu.Unlock()

	if job.IsRunning {
		return false, nil
	}

	if result, err := s.client.LastResult(ctx); err != nil {
		s.logger.Sugar().Warnw("final result fetch failed", "error", err)
	} else {
		s.mu.Lock()
		s.lastResult = result
		s.mu.Unlock()
	}

	if check, err := s.client.PreCheck(ctx); err != nil {
		s.logger.Sugar().Warnw("pre-check refresh failed", "error", err)
	} else {
		s.mu.Lock()
		s.preCheck = check
		s.mu.Unlock()
	}

	return true, nil
}

func (s *AllocationService) overview() *dto.AllocationOverview {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.job
	if job == nil {
		job = &models.AllocationJob{}
	}
	return &dto.AllocationOverview{
		Status:     job,
		LastResult: s.lastResult,
		PreCheck:   s.preCheck,
		Polling:    s.watcher != nil && s.watcher.Running(),
	}
}
