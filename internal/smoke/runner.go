package smoke

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okian/squads/internal/adapters/ingest"
	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run executes the complete smoke test.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	log := logger.Named("smoke")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting squads smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("people", config.People),
		logger.Int("minSize", config.MinSize),
		logger.Int("maxSize", config.MaxSize),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate and upload a roster
	roster, err := GenerateRoster(ctx, config.People, config.Skills)
	if err != nil {
		return stats, fmt.Errorf("roster generation failed: %w", err)
	}
	stats.PeopleGenerated = roster.Len()
	if config.OutputFile != "" {
		if err := saveRoster(config.OutputFile, roster); err != nil {
			log.Warn(ctx, "failed to save roster to file", logger.Error(err))
		}
	}
	if _, err := client.UploadRoster(ctx, roster); err != nil {
		return stats, fmt.Errorf("roster upload failed: %w", err)
	}

	// Step 3: Request every size concurrently and verify each answer
	if err := requestSizes(ctx, log, client, config, roster, stats); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "smoke test completed",
		logger.Int("requests", stats.RequestsSent),
		logger.Int("verified", stats.PlansVerified),
		logger.Int("rejected", stats.PlansRejected),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

func requestSizes(ctx context.Context, log logger.Logger, client *HTTPClient, config *Config, roster model.Roster, stats *Stats) error {
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Workers, 1))

	for size := config.MinSize; size <= config.MaxSize; size++ {
		g.Go(func() error {
			status, res, err := client.GenerateTeams(gCtx, size, "")
			if err != nil {
				return fmt.Errorf("size %d: %w", size, err)
			}

			mu.Lock()
			defer mu.Unlock()
			stats.RequestsSent++

			if size >= roster.Len() {
				if status != http.StatusUnprocessableEntity {
					stats.VerificationFails++
					return fmt.Errorf("size %d returned %d: %w", size, status, ErrUnexpectedRun)
				}
				stats.PlansRejected++
				return nil
			}
			if status != http.StatusCreated {
				stats.VerificationFails++
				return fmt.Errorf("size %d returned %d", size, status)
			}
			if err := VerifyTeams(roster, size, res.Teams); err != nil {
				stats.VerificationFails++
				return err
			}
			stats.PlansVerified++
			if config.Verbose {
				log.Debug(gCtx, "plan verified",
					logger.Int("size", size),
					logger.Int("teams", len(res.Teams)),
					logger.String("planID", res.PlanID),
				)
			}
			return nil
		})
	}
	return g.Wait()
}

func saveRoster(path string, r model.Roster) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return err
	}
	if err := ingest.WriteCSV(f, r, ingest.DefaultDelimiter); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
