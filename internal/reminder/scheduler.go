// Package reminder delivers the daily "time to practice" notifications.
package reminder

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/wordlearn/pkg/models"
)

// checkInterval is how often due reminders are looked up.
const checkInterval = time.Minute

// Store is the persistence surface the scheduler needs.
type Store interface {
	DueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error)
	UpdateNextReminder(ctx context.Context, userID int64, next time.Time) error
	CountAllDueWords(ctx context.Context, userID int64, now time.Time) (int, error)
}

// Notifier sends the reminder to the user; the Telegram adapter
// implements it.
type Notifier interface {
	SendReminder(userID int64, wordCount int) error
}

// Scheduler runs the periodic reminder check.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Store
	notifier  Notifier
	loc       *time.Location
}

// New creates a scheduler checking reminders in the given timezone.
func New(store Store, notifier Notifier, loc *time.Location) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		store:     store,
		notifier:  notifier,
		loc:       loc,
	}
}

// Start begins the periodic check without blocking.
func (s *Scheduler) Start() {
	s.scheduler.Every(checkInterval).Do(s.processDue)
	s.scheduler.StartAsync()
}

// Stop terminates the scheduler.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// processDue sends every due reminder and advances it to the next day.
// A user with no due words gets no message, but the reminder still
// advances so it is not retried all day.
func (s *Scheduler) processDue() {
	ctx := context.Background()
	now := time.Now().In(s.loc)

	due, err := s.store.DueReminders(ctx, now)
	if err != nil {
		log.Printf("reminder: failed to fetch due reminders: %v", err)
		return
	}

	for _, r := range due {
		count, err := s.store.CountAllDueWords(ctx, r.UserID, now)
		if err != nil {
			log.Printf("reminder: failed to count due words for user %d: %v", r.UserID, err)
			continue
		}

		if count > 0 {
			if err := s.notifier.SendReminder(r.UserID, count); err != nil {
				log.Printf("reminder: failed to notify user %d: %v", r.UserID, err)
			}
		}

		hh, mm, err := ParseTimeOfDay(r.RemindTime)
		if err != nil {
			log.Printf("reminder: user %d has malformed remind time %q: %v", r.UserID, r.RemindTime, err)
			continue
		}
		next := nextDayTrigger(now, hh, mm)
		if err := s.store.UpdateNextReminder(ctx, r.UserID, next); err != nil {
			log.Printf("reminder: failed to advance reminder for user %d: %v", r.UserID, err)
		}
	}
}

// ParseTimeOfDay parses "HH:mm" into hour and minute.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// NextTrigger returns the first time the daily reminder fires: today at
// hh:mm if that is still ahead, otherwise tomorrow.
func NextTrigger(now time.Time, hour, minute int) time.Time {
	y, m, d := now.Date()
	at := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

func nextDayTrigger(now time.Time, hour, minute int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, now.Location()).AddDate(0, 0, 1)
}
