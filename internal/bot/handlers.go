package bot

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/wordlearn/internal/practice"
)

const welcomeMessage = `Hello! Welcome to Word Learner Bot!

Here are the available commands:

/start - Show this welcome message
/add word1 word2 - Add a word to learn
/addwords - Add words from the database
/practice - Start a practice session
/remind HH:mm - Set daily reminder
/reset - Reset current practice session

You can also send text directly to add words:
• "cat, kat" - comma-separated
• "cat kat" - space-separated (single words only)`

const inputHint = "Use ',' for words with multiple whitespaces.\n" +
	"Examples:\n" +
	"• cat, kat\n" +
	"• the cat, de kat"

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !message.IsCommand() {
		b.handleDirectText(ctx, chatID, message.Text)
		return
	}

	switch message.Command() {
	case "start", "help":
		b.sendText(chatID, welcomeMessage)
	case "add":
		b.handleAdd(ctx, chatID, message.CommandArguments())
	case "addwords":
		resp, err := b.engine.OnAddWordsRequest(ctx, chatID)
		b.respond(chatID, resp, err)
	case "practice":
		resp, err := b.engine.OnPracticeStart(ctx, chatID)
		b.respond(chatID, resp, err)
	case "remind":
		resp, err := b.engine.OnSetReminder(ctx, chatID, message.CommandArguments())
		b.respond(chatID, resp, err)
	case "reset":
		resp, err := b.engine.OnReset(ctx, chatID)
		b.respond(chatID, resp, err)
	default:
		b.sendText(chatID, "Unknown command. Try /help")
	}
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, args string) {
	target, source, err := practice.ParseWordPair(args)
	if err != nil {
		b.sendText(chatID, "Usage: /add word1 word2")
		return
	}
	resp, err := b.engine.OnAddCommand(ctx, chatID, target, source)
	b.respond(chatID, resp, err)
}

// handleDirectText treats plain text as a word pair to add.
func (b *Bot) handleDirectText(ctx context.Context, chatID int64, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	target, source, err := practice.ParseWordPair(text)
	if err != nil {
		b.sendText(chatID, inputHint)
		return
	}
	resp, err := b.engine.OnAddCommand(ctx, chatID, target, source)
	b.respond(chatID, resp, err)
}

// handleCallback dispatches inline button taps. Callback data formats:
// "reveal <id>", "finish <id> <action>", "learn <id>", "skip <id>",
// "practice".
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Acknowledge the tap so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	parts := strings.Fields(query.Data)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "practice":
		resp, err := b.engine.OnPracticeStart(ctx, chatID)
		b.respond(chatID, resp, err)
	case "reveal":
		if wordID, ok := parseWordID(parts); ok {
			resp, err := b.engine.OnReveal(ctx, chatID, wordID)
			b.respond(chatID, resp, err)
		}
	case "finish":
		wordID, ok := parseWordID(parts)
		if !ok || len(parts) < 3 {
			return
		}
		outcome, ok := parseOutcome(parts[2])
		if !ok {
			return
		}
		resp, err := b.engine.OnJudge(ctx, chatID, wordID, outcome)
		b.respond(chatID, resp, err)
	case "learn":
		if wordID, ok := parseWordID(parts); ok {
			resp, err := b.engine.OnLearnDecision(ctx, chatID, wordID)
			b.respond(chatID, resp, err)
		}
	case "skip":
		if wordID, ok := parseWordID(parts); ok {
			resp, err := b.engine.OnSkipDecision(ctx, chatID, wordID)
			b.respond(chatID, resp, err)
		}
	}
}

func parseWordID(parts []string) (int64, bool) {
	if len(parts) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func parseOutcome(s string) (practice.Outcome, bool) {
	switch s {
	case "correct":
		return practice.OutcomeCorrect, true
	case "incorrect":
		return practice.OutcomeIncorrect, true
	case "delete":
		return practice.OutcomeDelete, true
	default:
		return 0, false
	}
}

// respond sends the engine's response, translating the error taxonomy
// into user-facing text. Stale taps (ErrNotFound) are ignored silently.
func (b *Bot) respond(chatID int64, resp practice.Response, err error) {
	if err == nil {
		b.send(chatID, resp)
		return
	}

	switch {
	case errors.Is(err, practice.ErrInvalidInput):
		b.sendText(chatID, err.Error())
	case errors.Is(err, practice.ErrNoSession):
		b.sendText(chatID, "No practice session is running. Try /practice")
	case errors.Is(err, practice.ErrNotFound):
		// Stale or duplicate tap; the original action already won.
		log.Printf("ignored stale action from chat %d: %v", chatID, err)
	default:
		log.Printf("handler error for chat %d: %v", chatID, err)
		b.sendText(chatID, "Something went wrong, please try again.")
	}
}
