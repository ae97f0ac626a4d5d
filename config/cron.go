package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs lists statically configured jobs. Packages register additional
// jobs through cron.Register during init.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
