// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Processor handles one receipt file from the inbox. Implemented by the
// CLI's process command wiring.
type Processor interface {
	ProcessFile(ctx context.Context, path string) error
}

// Scheduler sweeps the receipt inbox directory on a cron schedule: every
// supported file is processed and moved to the archive directory.
type Scheduler struct {
	cron      *cron.Cron
	processor Processor
	inboxDir  string
	archive   string
	schedule  string
	logger    *slog.Logger
}

// NewScheduler creates a new inbox sweep scheduler.
func NewScheduler(processor Processor, inboxDir, archive, schedule string, logger *slog.Logger) *Scheduler {
	// Create cron with seconds disabled (standard 5-field format)
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:      c,
		processor: processor,
		inboxDir:  inboxDir,
		archive:   archive,
		schedule:  schedule,
		logger:    logger,
	}
}

// Start begins scheduled sweeps.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.SweepInbox)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.String("schedule", s.schedule),
		slog.String("inbox", s.inboxDir),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// SweepInbox processes every supported file sitting in the inbox. Also
// callable directly, which is how the CLI's one-shot mode uses it.
func (s *Scheduler) SweepInbox() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	entries, err := os.ReadDir(s.inboxDir)
	if err != nil {
		s.logger.Error("failed to read inbox", slog.Any("error", err))
		return
	}

	processed := 0
	failed := 0

	for _, entry := range entries {
		if entry.IsDir() || !supportedFile(entry.Name()) {
			continue
		}
		path := filepath.Join(s.inboxDir, entry.Name())

		if err := s.processor.ProcessFile(ctx, path); err != nil {
			s.logger.Warn("failed to process receipt file",
				slog.String("file", path),
				slog.Any("error", err),
			)
			failed++
			continue
		}

		if err := s.archiveFile(path, entry.Name()); err != nil {
			s.logger.Warn("failed to archive receipt file",
				slog.String("file", path),
				slog.Any("error", err),
			)
		}
		processed++
	}

	if processed > 0 || failed > 0 {
		s.logger.Info("inbox sweep completed",
			slog.Int("processed", processed),
			slog.Int("failed", failed),
		)
	}
}

func (s *Scheduler) archiveFile(path, name string) error {
	if err := os.MkdirAll(s.archive, 0o755); err != nil {
		return err
	}
	return os.Rename(path, filepath.Join(s.archive, name))
}

func supportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}
