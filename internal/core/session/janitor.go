package session

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Janitor periodically purges expired session records.
type Janitor struct {
	manager *Manager
	cron    *cron.Cron
	spec    string
}

// NewJanitor creates a janitor running on a cron spec (e.g. "@every 15m").
func NewJanitor(manager *Manager, spec string) *Janitor {
	return &Janitor{
		manager: manager,
		cron:    cron.New(),
		spec:    spec,
	}
}

// Start schedules the purge job.
func (j *Janitor) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		n, err := j.manager.PurgeExpired(context.Background())
		if err != nil {
			log.Printf("⚠️ Session purge failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("🧹 Purged %d expired session(s)", n)
		}
	})
	if err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the schedule, waiting for a running purge to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}
