package cron

import (
	"context"
	"log"
	"os"
	"time"

	"sixgo.GO/resources"
)

// ResourceRefreshJob is the scheduled taxonomy re-warm.
const ResourceRefreshJob = "resources:refresh"

// RegisterResourceRefresh schedules a periodic refetch of the resource
// catalog so the console never serves a day-old taxonomy past its TTL.
// Schedule comes from RESOURCE_REFRESH_SCHEDULE (cron spec), default daily.
func RegisterResourceRefresh(cache *resources.Cache) {
	schedule := os.Getenv("RESOURCE_REFRESH_SCHEDULE")
	if schedule == "" {
		schedule = "@daily"
	}
	Register(ResourceRefreshJob, schedule, func(...string) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		data, err := cache.Refresh(ctx)
		if err != nil {
			log.Printf("cron: %s failed: %v", ResourceRefreshJob, err)
			return
		}
		log.Printf("cron: %s done (%d categories, %d languages)",
			ResourceRefreshJob, len(data.Categories), len(data.Languages))
	})
}
