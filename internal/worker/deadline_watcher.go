package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
)

// ProcurementFacade exposes the subset of application functionality required by the watcher.
type ProcurementFacade interface {
	ExpiredTenders(ctx context.Context, now time.Time, limit int) ([]model.Tender, error)
	CloseTender(ctx context.Context, id uuid.UUID) (*model.Tender, error)
}

// DeadlineWatcher periodically closes active tenders whose deadline has
// passed, resolving their pending bids through the regular close path.
type DeadlineWatcher struct {
	facade       ProcurementFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Tender
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDeadlineWatcher constructs deadline watcher worker pool.
func NewDeadlineWatcher(facade ProcurementFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *DeadlineWatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &DeadlineWatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Tender, batchSize*workers),
	}
}

// Start launches background processing.
func (w *DeadlineWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.worker(runCtx)
	}

	w.wg.Add(1)
	go w.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (w *DeadlineWatcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *DeadlineWatcher) dispatch(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.jobs)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.fetchAndDispatch(ctx)
		}
	}
}

func (w *DeadlineWatcher) fetchAndDispatch(ctx context.Context) {
	tenders, err := w.facade.ExpiredTenders(ctx, time.Now(), w.batchSize)
	if err != nil {
		w.logger.Error("fetch expired tenders failed", slog.String("error", err.Error()))
		return
	}
	for _, tender := range tenders {
		select {
		case <-ctx.Done():
			return
		case w.jobs <- tender:
		}
	}
}

func (w *DeadlineWatcher) worker(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case tender, ok := <-w.jobs:
			if !ok {
				return
			}
			w.handleTender(ctx, tender)
		}
	}
}

func (w *DeadlineWatcher) handleTender(ctx context.Context, tender model.Tender) {
	if _, err := w.facade.CloseTender(ctx, tender.ID); err != nil {
		// Another caller may have decided the tender between the sweep and
		// this close; that is not a failure.
		if errors.Is(err, domainErrors.ErrInvalidTransition) || errors.Is(err, domainErrors.ErrConflict) {
			return
		}
		w.logger.Error("close expired tender failed",
			slog.String("tender", tender.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	w.logger.Info("expired tender closed", slog.String("tender", tender.ID.String()))
}
