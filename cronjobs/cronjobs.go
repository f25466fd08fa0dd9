package cronjobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is one scheduled task.
type Job struct {
	Name string
	Spec string
	Run  func()
}

// InitCronJobs schedules every job with a non-empty spec and starts the
// scheduler. A nil scheduler is returned when nothing was scheduled. The
// caller stops the returned scheduler on shutdown.
func InitCronJobs(jobs ...Job) (*cron.Cron, error) {
	c := cron.New()
	scheduled := 0

	for _, job := range jobs {
		if job.Spec == "" {
			continue
		}
		_, err := c.AddFunc(job.Spec, func() {
			logrus.WithField("job", job.Name).Info("CronJob running")
			job.Run()
		})
		if err != nil {
			return nil, fmt.Errorf("schedule %s (%q): %w", job.Name, job.Spec, err)
		}
		logrus.WithFields(logrus.Fields{"job": job.Name, "spec": job.Spec}).Info("Scheduled cron job")
		scheduled++
	}

	if scheduled == 0 {
		return nil, nil
	}
	c.Start()
	return c, nil
}
