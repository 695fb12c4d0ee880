package service

import (
	"log"
	"time"
)

// Scheduler runs the weekly registry backup. It always reads the real clock:
// scheduling is infrastructure, not part of any travelled operation.
type Scheduler struct {
	backupSvc *BackupService
	stopChan  chan struct{}
}

// NewScheduler creates a new Scheduler
func NewScheduler(backupSvc *BackupService) *Scheduler {
	return &Scheduler{
		backupSvc: backupSvc,
		stopChan:  make(chan struct{}),
	}
}

// Start starts the scheduled tasks
func (s *Scheduler) Start() {
	go s.runWeeklyBackupScheduler()
	log.Println("Scheduler started - weekly registry backup on Sundays at 03:00")
}

// Stop stops the scheduled tasks
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

func (s *Scheduler) runWeeklyBackupScheduler() {
	for {
		nextRun := s.calculateNextBackupTime()
		duration := time.Until(nextRun)

		log.Printf("Next backup scheduled at %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), duration.Round(time.Hour))

		select {
		case <-time.After(duration):
			log.Println("Running weekly backup...")
			backupPath, err := s.backupSvc.Backup()
			if err != nil {
				log.Printf("Failed to create backup: %v", err)
			} else {
				log.Printf("Backup created successfully: %s", backupPath)
			}
		case <-s.stopChan:
			return
		}
	}
}

// calculateNextBackupTime calculates the next Sunday at 03:00
func (s *Scheduler) calculateNextBackupTime() time.Time {
	now := time.Now()

	daysUntilSunday := (7 - int(now.Weekday())) % 7
	if daysUntilSunday == 0 {
		backupTime := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
		if now.After(backupTime) {
			daysUntilSunday = 7
		}
	}

	nextSunday := now.AddDate(0, 0, daysUntilSunday)
	return time.Date(nextSunday.Year(), nextSunday.Month(), nextSunday.Day(), 3, 0, 0, 0, now.Location())
}
