// Package practice drives the review session state machine: daily pool
// selection, word-by-word reveal/judge cycles, onboarding of new words,
// session stats and reminders. The engine is transport-neutral: it
// receives typed events and returns Response payloads.
package practice

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/example/wordlearn/internal/reminder"
	"github.com/example/wordlearn/internal/spaced_repetition"
	"github.com/example/wordlearn/pkg/models"
)

// Engine is the per-user review session engine. Events for the same user
// are serialized on a per-user lock; different users proceed in parallel.
type Engine struct {
	store Store
	cfg   *Config
	loc   *time.Location

	// Injected for deterministic tests.
	now func() time.Time

	mu    sync.Mutex
	users map[int64]*userState

	rngMu sync.Mutex
	rng   *rand.Rand
}

// userState holds the in-memory, per-user conversation state. The session
// queue itself is persisted; only the onboarding batch lives here.
type userState struct {
	mu         sync.Mutex
	onboarding *onboardingBatch
}

// onboardingBatch is one /addwords run: candidates sampled once up front,
// consumed one decision at a time.
type onboardingBatch struct {
	words []models.Word
	index int
	learn []int64
	skip  []int64
}

// New creates an engine over the given store. An invalid configured
// timezone falls back to UTC.
func New(store Store, cfg *Config) *Engine {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &Engine{
		store: store,
		cfg:   cfg,
		loc:   loc,
		now:   time.Now,
		users: make(map[int64]*userState),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// lockUser acquires the per-user lock. The caller must unlock.
func (e *Engine) lockUser(userID int64) *userState {
	e.mu.Lock()
	st, ok := e.users[userID]
	if !ok {
		st = &userState{}
		e.users[userID] = st
	}
	e.mu.Unlock()

	st.mu.Lock()
	return st
}

func (e *Engine) localNow() time.Time {
	return e.now().In(e.loc)
}

// dayOf truncates a timestamp to its calendar day.
func (e *Engine) dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.loc)
}

func (e *Engine) nextReviewDate(base time.Time, stage int) time.Time {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return spaced_repetition.NextReviewDate(base, stage, e.rng)
}

func (e *Engine) poolSize() int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	spread := e.cfg.DailyPoolMax - e.cfg.DailyPoolMin
	if spread <= 0 {
		return e.cfg.DailyPoolMin
	}
	return e.cfg.DailyPoolMin + e.rng.Intn(spread+1)
}

// ParseWordPair parses free-text input for adding a word. Two formats:
// "a, b" (comma-separated) and "a b" (exactly one space).
func ParseWordPair(text string) (target, source string, err error) {
	text = strings.TrimSpace(text)

	if i := strings.Index(text, ","); i >= 0 {
		target = strings.TrimSpace(text[:i])
		source = strings.TrimSpace(text[i+1:])
	} else if strings.Count(text, " ") == 1 {
		parts := strings.SplitN(text, " ", 2)
		target, source = parts[0], parts[1]
	}

	if target == "" || source == "" {
		return "", "", fmt.Errorf("%w: expected \"word1, word2\" or \"word1 word2\"", ErrInvalidInput)
	}
	return target, source, nil
}

// OnAddCommand adds a custom word pair. Two independently scheduled
// progress items are created, one per translation direction, both at
// stage 0 and due immediately.
func (e *Engine) OnAddCommand(ctx context.Context, userID int64, textA, textB string) (Response, error) {
	textA = strings.TrimSpace(textA)
	textB = strings.TrimSpace(textB)
	if textA == "" || textB == "" {
		return Response{}, fmt.Errorf("%w: both words are required", ErrInvalidInput)
	}

	st := e.lockUser(userID)
	defer st.mu.Unlock()

	now := e.localNow()

	w1, err := e.store.CreateWord(ctx, textA, textB)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create word: %w", err)
	}
	if err := e.store.AddToPractice(ctx, userID, []int64{w1.ID}, now); err != nil {
		return Response{}, fmt.Errorf("failed to add word to practice: %w", err)
	}

	w2, err := e.store.CreateWord(ctx, textB, textA)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create reverse word: %w", err)
	}
	if err := e.store.AddToPractice(ctx, userID, []int64{w2.ID}, now); err != nil {
		return Response{}, fmt.Errorf("failed to add reverse word to practice: %w", err)
	}

	count, err := e.store.CountPoolDue(ctx, userID, now, e.dayOf(now))
	if err != nil {
		return Response{}, fmt.Errorf("failed to count due words: %w", err)
	}

	return Response{
		Text:    fmt.Sprintf("Done! Added word to learn: %s : %s", textA, textB),
		Actions: practiceRow(fmt.Sprintf("Practice words (%d)", count), count),
	}, nil
}

// OnAddWordsRequest starts (or resumes) an onboarding batch: dictionary
// words the user has neither learned nor skipped, offered one at a time.
func (e *Engine) OnAddWordsRequest(ctx context.Context, userID int64) (Response, error) {
	st := e.lockUser(userID)
	defer st.mu.Unlock()

	// An in-flight batch resumes rather than resampling, so a word is
	// never offered twice within one run.
	if st.onboarding != nil && st.onboarding.index < len(st.onboarding.words) {
		return e.onboardingPrompt(st.onboarding), nil
	}

	words, err := e.store.SampleUnseenWords(ctx, userID, e.cfg.OnboardingBatchSize)
	if err != nil {
		return Response{}, fmt.Errorf("failed to sample words: %w", err)
	}
	if len(words) == 0 {
		return Response{Text: "No new words available to add!"}, nil
	}

	st.onboarding = &onboardingBatch{words: words}
	return e.onboardingPrompt(st.onboarding), nil
}

func (e *Engine) onboardingPrompt(b *onboardingBatch) Response {
	w := b.words[b.index]
	return Response{
		Text:    fmt.Sprintf("%s : %s", w.Source, w.Target),
		Actions: learnSkipRow(w.ID),
	}
}

// OnLearnDecision accepts the current onboarding candidate.
func (e *Engine) OnLearnDecision(ctx context.Context, userID, wordID int64) (Response, error) {
	return e.onboardingDecision(ctx, userID, wordID, true)
}

// OnSkipDecision permanently excludes the current onboarding candidate.
func (e *Engine) OnSkipDecision(ctx context.Context, userID, wordID int64) (Response, error) {
	return e.onboardingDecision(ctx, userID, wordID, false)
}

func (e *Engine) onboardingDecision(ctx context.Context, userID, wordID int64, learn bool) (Response, error) {
	st := e.lockUser(userID)
	defer st.mu.Unlock()

	b := st.onboarding
	if b == nil || b.index >= len(b.words) {
		return Response{}, fmt.Errorf("%w: no words are being offered", ErrNotFound)
	}
	if b.words[b.index].ID != wordID {
		// Stale or duplicate tap; the decision was already consumed.
		return Response{}, fmt.Errorf("%w: word %d is not the current candidate", ErrNotFound, wordID)
	}

	if learn {
		b.learn = append(b.learn, wordID)
	} else {
		b.skip = append(b.skip, wordID)
	}
	b.index++

	if b.index < len(b.words) {
		return e.onboardingPrompt(b), nil
	}

	// Batch finished: persist the decisions in one sweep.
	now := e.localNow()
	if len(b.learn) > 0 {
		if err := e.store.AddToPractice(ctx, userID, b.learn, now); err != nil {
			return Response{}, fmt.Errorf("failed to add words to practice: %w", err)
		}
	}
	if len(b.skip) > 0 {
		if err := e.store.AddToSkiplist(ctx, userID, b.skip); err != nil {
			return Response{}, fmt.Errorf("failed to update skip list: %w", err)
		}
	}
	learned := len(b.learn)
	st.onboarding = nil

	return Response{Text: fmt.Sprintf("Done! Added words to learn: %d", learned)}, nil
}

// ensureTodayPool returns today's pool, creating it on first use. Once a
// non-empty pool exists for the day it is never re-selected; words
// becoming due later the same day wait until tomorrow.
func (e *Engine) ensureTodayPool(ctx context.Context, userID int64, now time.Time) ([]int64, error) {
	day := e.dayOf(now)

	pool, err := e.store.TodayPool(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch today's pool: %w", err)
	}
	if len(pool) > 0 {
		return pool, nil
	}

	pool, err = e.store.CreateTodayPool(ctx, userID, now, day, e.poolSize())
	if err != nil {
		return nil, fmt.Errorf("failed to create today's pool: %w", err)
	}
	return pool, nil
}

// OnPracticeStart begins a practice sitting. An existing non-empty
// session resumes at its current head; otherwise up to SessionBatchSize
// due words are pulled from today's pool.
func (e *Engine) OnPracticeStart(ctx context.Context, userID int64) (Response, error) {
	st := e.lockUser(userID)
	defer st.mu.Unlock()

	now := e.localNow()

	head, err := e.store.NextSessionWord(ctx, userID)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read session: %w", err)
	}
	if head != nil {
		return wordPrompt("", head), nil
	}

	if _, err := e.ensureTodayPool(ctx, userID, now); err != nil {
		return Response{}, err
	}

	words, err := e.store.PoolDueWords(ctx, userID, now, e.dayOf(now), e.cfg.SessionBatchSize)
	if err != nil {
		return Response{}, fmt.Errorf("failed to pull due words: %w", err)
	}
	if len(words) == 0 {
		return Response{Text: "No words to practice!"}, nil
	}

	ids := make([]int64, len(words))
	for i, w := range words {
		ids[i] = w.WordID
	}
	if err := e.store.StartSession(ctx, userID, ids); err != nil {
		return Response{}, fmt.Errorf("failed to start session: %w", err)
	}

	head, err = e.store.NextSessionWord(ctx, userID)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read session: %w", err)
	}
	if head == nil {
		return Response{Text: "No words to practice!"}, nil
	}
	return wordPrompt("", head), nil
}

// OnReveal shows the full pair for the session head. Read-only: no state
// changes until the word is judged.
func (e *Engine) OnReveal(ctx context.Context, userID, wordID int64) (Response, error) {
	st := e.lockUser(userID)
	defer st.mu.Unlock()

	head, err := e.currentHead(ctx, userID, wordID)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Text:    fmt.Sprintf("%s : %s", head.Word.Source, head.Word.Target),
		Actions: judgeRow(head.WordID),
	}, nil
}

// OnJudge applies the user's recall outcome to the session head. The head
// word id doubles as the position token: a judge for any other word is a
// stale/duplicate tap and is rejected without touching state, so a single
// review can never advance a word's stage twice.
func (e *Engine) OnJudge(ctx context.Context, userID, wordID int64, outcome Outcome) (Response, error) {
	st := e.lockUser(userID)
	defer st.mu.Unlock()

	head, err := e.currentHead(ctx, userID, wordID)
	if err != nil {
		return Response{}, err
	}

	now := e.localNow()
	upd := ReviewUpdate{
		UserID:     userID,
		WordID:     head.WordID,
		OldStage:   head.Stage,
		WordSource: head.Word.Source,
		WordTarget: head.Word.Target,
	}

	var ack string
	switch outcome {
	case OutcomeCorrect:
		newStage := spaced_repetition.StageAfterCorrect(head.Stage)
		upd.Result = models.ResultCorrect
		upd.NewStage = &newStage
		upd.NextDate = e.nextReviewDate(now, newStage)
		upd.CorrectDelta = 1
		upd.TotalDelta = 1
		upd.ResetFailures = true
		ack = "Marked as correct!"
	case OutcomeIncorrect:
		newStage := spaced_repetition.StageAfterIncorrect()
		upd.Result = models.ResultIncorrect
		upd.NewStage = &newStage
		upd.NextDate = e.nextReviewDate(now, newStage)
		upd.TotalDelta = 1
		upd.IncrementFailures = true
		ack = "Marked as incorrect"
	case OutcomeDelete:
		upd.Result = models.ResultDeleted
		upd.MarkDeleted = true
		ack = "Deleted!"
	default:
		return Response{}, fmt.Errorf("%w: unknown outcome %d", ErrInvalidInput, outcome)
	}

	if err := e.store.ApplyReview(ctx, upd); err != nil {
		return Response{}, fmt.Errorf("failed to apply review: %w", err)
	}

	next, err := e.store.NextSessionWord(ctx, userID)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read session: %w", err)
	}
	if next != nil {
		return wordPrompt(ack, next), nil
	}

	return e.sessionFinished(ctx, userID, now, ack)
}

// currentHead returns the session head after verifying the action targets
// it. Per-user locking plus this check give the ordering and idempotence
// guarantees for judge actions.
func (e *Engine) currentHead(ctx context.Context, userID, wordID int64) (*models.PracticeWord, error) {
	head, err := e.store.NextSessionWord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if head == nil {
		return nil, fmt.Errorf("%w for user %d", ErrNoSession, userID)
	}
	if head.WordID != wordID {
		return nil, fmt.Errorf("%w: word %d is not the current word", ErrNotFound, wordID)
	}
	return head, nil
}

// sessionFinished emits either "N words left" (more of today's pool is
// still due) or the full summary when the pool is exhausted, resetting
// the session counters afterwards.
func (e *Engine) sessionFinished(ctx context.Context, userID int64, now time.Time, ack string) (Response, error) {
	remaining, err := e.store.CountPoolDue(ctx, userID, now, e.dayOf(now))
	if err != nil {
		return Response{}, fmt.Errorf("failed to count remaining words: %w", err)
	}

	if remaining > 0 {
		return Response{
			Text:    withAck(ack, fmt.Sprintf("%d words left", remaining)),
			Actions: practiceRow(fmt.Sprintf("Practice more (%d)", remaining), remaining),
		}, nil
	}

	stats, err := e.store.SessionStats(ctx, userID)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read session stats: %w", err)
	}
	results, err := e.store.SessionResults(ctx, userID)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read session results: %w", err)
	}
	breakdown := NewSessionBreakdown(results, stats)

	var incorrectIDs []int64
	for _, r := range breakdown.Incorrect {
		incorrectIDs = append(incorrectIDs, r.WordID)
	}
	failures, err := e.store.ConsecutiveFailures(ctx, userID, incorrectIDs)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read failure counts: %w", err)
	}
	confident, err := e.store.CountConfidentWords(ctx, userID)
	if err != nil {
		return Response{}, fmt.Errorf("failed to count confident words: %w", err)
	}
	insights := GenerateInsights(breakdown, failures, confident, confident-breakdown.NewlyConfident())

	streakDays, err := e.updateStreak(ctx, userID, now)
	if err != nil {
		return Response{}, err
	}

	text := withAck(ack, FormatSessionSummary(breakdown, insights, streakDays))

	if err := e.store.ResetSessionStats(ctx, userID); err != nil {
		return Response{}, fmt.Errorf("failed to reset session stats: %w", err)
	}
	if err := e.store.ClearSessionResults(ctx, userID); err != nil {
		return Response{}, fmt.Errorf("failed to clear session results: %w", err)
	}

	return Response{
		Text:    text,
		Actions: practiceRow("Practice more (0)", 0),
	}, nil
}

func (e *Engine) updateStreak(ctx context.Context, userID int64, now time.Time) (int, error) {
	current, lastActive, err := e.store.Streak(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to read streak: %w", err)
	}
	streak, active := ComputeStreakUpdate(lastActive, current, now)
	if err := e.store.SetStreak(ctx, userID, streak, active); err != nil {
		return 0, fmt.Errorf("failed to update streak: %w", err)
	}
	return streak, nil
}

// OnReset aborts the current session: queue, counters and per-word
// results are cleared; no word progress is touched. Safe in any state.
func (e *Engine) OnReset(ctx context.Context, userID int64) (Response, error) {
	st := e.lockUser(userID)
	defer st.mu.Unlock()

	if err := e.store.ClearSession(ctx, userID); err != nil {
		return Response{}, fmt.Errorf("failed to clear session: %w", err)
	}
	if err := e.store.ResetSessionStats(ctx, userID); err != nil {
		return Response{}, fmt.Errorf("failed to reset session stats: %w", err)
	}
	if err := e.store.ClearSessionResults(ctx, userID); err != nil {
		return Response{}, fmt.Errorf("failed to clear session results: %w", err)
	}

	return Response{Text: "Reset is done"}, nil
}

// OnSetReminder stores the user's daily reminder time ("HH:mm").
func (e *Engine) OnSetReminder(ctx context.Context, userID int64, timeOfDay string) (Response, error) {
	hh, mm, err := reminder.ParseTimeOfDay(strings.TrimSpace(timeOfDay))
	if err != nil {
		return Response{}, fmt.Errorf("%w: time must be HH:mm, e.g. 09:00", ErrInvalidInput)
	}

	st := e.lockUser(userID)
	defer st.mu.Unlock()

	now := e.localNow()
	next := reminder.NextTrigger(now, hh, mm)
	normalized := fmt.Sprintf("%02d:%02d", hh, mm)

	if err := e.store.SetReminder(ctx, userID, normalized, next); err != nil {
		return Response{}, fmt.Errorf("failed to save reminder: %w", err)
	}

	return Response{
		Text: fmt.Sprintf("OK, set reminder daily on %s. Next reminder: %s",
			normalized, next.Format("02 Jan 15:04")),
	}, nil
}

func wordPrompt(ack string, w *models.PracticeWord) Response {
	return Response{
		Text:    withAck(ack, w.Word.Target),
		Actions: revealRow(w.WordID),
	}
}

func withAck(ack, text string) string {
	if ack == "" {
		return text
	}
	return ack + "\n\n" + text
}
