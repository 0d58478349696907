package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Abhishekjc19/fluentia/internal/repositories"
	"github.com/Abhishekjc19/fluentia/internal/storage"
)

// JanitorConfig controls the recording sweep.
type JanitorConfig struct {
	Schedule  string        // Cron schedule (e.g., "0 3 * * *" for 3 AM daily)
	Retention time.Duration // Objects younger than this are never deleted
	Enabled   bool
}

// RecordingJanitor deletes stored audio and video objects that no database
// row references anymore. Objects inside the retention window are kept, so
// an upload racing its row insert is never swept.
type RecordingJanitor struct {
	store      storage.Store
	interviews *repositories.InterviewRepository
	answers    *repositories.AnswerRepository
	config     *JanitorConfig
	cron       *cron.Cron
	logger     *zap.Logger
}

func NewRecordingJanitor(
	store storage.Store,
	interviews *repositories.InterviewRepository,
	answers *repositories.AnswerRepository,
	config *JanitorConfig,
	logger *zap.Logger,
) *RecordingJanitor {
	return &RecordingJanitor{
		store:      store,
		interviews: interviews,
		answers:    answers,
		config:     config,
		cron:       cron.New(),
		logger:     logger,
	}
}

// Start begins the scheduled sweep.
func (rj *RecordingJanitor) Start() error {
	if !rj.config.Enabled {
		rj.logger.Info("Recording janitor is disabled, skipping scheduler")
		return nil
	}

	rj.logger.Info("Starting recording janitor", zap.String("schedule", rj.config.Schedule))

	_, err := rj.cron.AddFunc(rj.config.Schedule, func() {
		if err := rj.RunSweep(context.Background()); err != nil {
			rj.logger.Error("Recording sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule recording sweep: %w", err)
	}

	rj.cron.Start()
	return nil
}

// Stop stops the scheduled sweep.
func (rj *RecordingJanitor) Stop() {
	if rj.cron != nil {
		rj.cron.Stop()
		rj.logger.Info("Recording janitor stopped")
	}
}

// RunSweep performs a single sweep over both media prefixes.
func (rj *RecordingJanitor) RunSweep(ctx context.Context) error {
	videoKeys, err := rj.interviews.AllVideoKeys()
	if err != nil {
		return fmt.Errorf("failed to list video keys: %w", err)
	}
	audioKeys, err := rj.answers.AllAudioKeys()
	if err != nil {
		return fmt.Errorf("failed to list audio keys: %w", err)
	}

	referenced := make(map[string]bool, len(videoKeys)+len(audioKeys))
	for _, key := range videoKeys {
		referenced[key] = true
	}
	for _, key := range audioKeys {
		referenced[key] = true
	}

	deleted := 0
	for _, prefix := range []string{"answers/", "recordings/"} {
		objects, err := rj.store.List(ctx, prefix)
		if err != nil {
			return fmt.Errorf("failed to list %q objects: %w", prefix, err)
		}
		for _, obj := range objects {
			if referenced[obj.Key] {
				continue
			}
			if time.Since(obj.Created) < rj.config.Retention {
				continue
			}
			if err := rj.store.Delete(ctx, obj.Key); err != nil {
				rj.logger.Warn("Failed to delete unreferenced object",
					zap.String("key", obj.Key), zap.Error(err))
				continue
			}
			deleted++
		}
	}

	rj.logger.Info("Recording sweep finished", zap.Int("deleted", deleted))
	return nil
}
