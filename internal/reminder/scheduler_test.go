package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordlearn/pkg/models"
)

type fakeStore struct {
	due      []models.Reminder
	dueWords map[int64]int
	advanced map[int64]time.Time
}

func (f *fakeStore) DueReminders(context.Context, time.Time) ([]models.Reminder, error) {
	return f.due, nil
}

func (f *fakeStore) UpdateNextReminder(_ context.Context, userID int64, next time.Time) error {
	if f.advanced == nil {
		f.advanced = make(map[int64]time.Time)
	}
	f.advanced[userID] = next
	return nil
}

func (f *fakeStore) CountAllDueWords(_ context.Context, userID int64, _ time.Time) (int, error) {
	return f.dueWords[userID], nil
}

type fakeNotifier struct {
	sent map[int64]int
}

func (f *fakeNotifier) SendReminder(userID int64, wordCount int) error {
	if f.sent == nil {
		f.sent = make(map[int64]int)
	}
	f.sent[userID] = wordCount
	return nil
}

func TestParseTimeOfDay(t *testing.T) {
	hh, mm, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, hh)
	assert.Equal(t, 30, mm)

	hh, mm, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23, hh)
	assert.Equal(t, 59, mm)

	for _, bad := range []string{"24:00", "9:5", "0930", "nine", ""} {
		_, _, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestNextTrigger(t *testing.T) {
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	// Still ahead today.
	assert.Equal(t,
		time.Date(2026, 8, 27, 21, 30, 0, 0, time.UTC),
		NextTrigger(now, 21, 30))

	// Already passed: tomorrow.
	assert.Equal(t,
		time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		NextTrigger(now, 9, 0))

	// Exactly now counts as passed.
	assert.Equal(t,
		time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		NextTrigger(now, 10, 0))
}

func TestProcessDueNotifiesAndAdvances(t *testing.T) {
	store := &fakeStore{
		due: []models.Reminder{
			{UserID: 1, RemindTime: "09:00"},
			{UserID: 2, RemindTime: "09:00"},
		},
		dueWords: map[int64]int{1: 12, 2: 0},
	}
	notifier := &fakeNotifier{}
	s := New(store, notifier, time.UTC)

	s.processDue()

	// User 1 has words waiting and gets notified; user 2 does not, but
	// both reminders move to the next day.
	assert.Equal(t, map[int64]int{1: 12}, notifier.sent)
	assert.Contains(t, store.advanced, int64(1))
	assert.Contains(t, store.advanced, int64(2))

	next := store.advanced[1]
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestProcessDueSkipsMalformedTime(t *testing.T) {
	store := &fakeStore{
		due:      []models.Reminder{{UserID: 1, RemindTime: "morning"}},
		dueWords: map[int64]int{1: 3},
	}
	notifier := &fakeNotifier{}
	s := New(store, notifier, time.UTC)

	s.processDue()

	// Notification still goes out; the advance is skipped because the
	// stored time cannot be parsed.
	assert.Equal(t, map[int64]int{1: 3}, notifier.sent)
	assert.Empty(t, store.advanced)
}
