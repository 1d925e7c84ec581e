// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartCacheSweeper periodically drops expired generation cache entries so
// long-running processes don't accumulate stale personalized content.
func (s *GeneratorService) StartCacheSweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if removed := s.SweepExpiredCache(); removed > 0 {
				log.Printf("[SWEEPER] dropped %d expired generation cache entries", removed)
			}
		}),
	)
}
