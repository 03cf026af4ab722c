// internal/app/system/workers/loginrecordcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	loginstore "github.com/studysync/studysync/internal/app/store/logins"
	"go.uber.org/zap"
)

// LoginRecordCleanup is a background worker that purges login records
// older than the retention window. Records are advisory telemetry, so
// the collection must not grow without bound.
type LoginRecordCleanup struct {
	logins    *loginstore.Store
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewLoginRecordCleanup creates a cleanup worker.
//
// Parameters:
//   - logins: the login record store
//   - logger: zap logger for logging
//   - interval: how often to run cleanup (e.g., 1 hour)
//   - retention: how long records are kept (e.g., 90 days)
func NewLoginRecordCleanup(logins *loginstore.Store, logger *zap.Logger, interval, retention time.Duration) *LoginRecordCleanup {
	return &LoginRecordCleanup{
		logins:    logins,
		log:       logger,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *LoginRecordCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("login record cleanup worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *LoginRecordCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("login record cleanup worker stopped")
}

func (w *LoginRecordCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *LoginRecordCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.logins.DeleteOlderThan(ctx, time.Now().UTC().Add(-w.retention))
	if err != nil {
		w.log.Error("failed to purge old login records", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("purged old login records", zap.Int64("count", count))
	}
}
