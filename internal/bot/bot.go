// Package bot adapts Telegram updates to practice engine events and
// renders engine responses as messages with inline keyboards. All chat
// markup and callback-data encoding lives here; the engine never sees it.
package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/wordlearn/internal/practice"
)

// Bot is the Telegram transport in front of the practice engine.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *practice.Engine

	stopOnce sync.Once
}

// New creates the bot from the TELEGRAM_BOT_TOKEN environment variable.
func New(engine *practice.Engine) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	return &Bot{api: api, engine: engine}, nil
}

// Start polls for updates until the context is cancelled. Updates are
// handled concurrently; the engine serializes per user.
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// Stop halts update polling.
func (b *Bot) Stop() {
	b.stopOnce.Do(b.api.StopReceivingUpdates)
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// send renders an engine response into a chat message.
func (b *Bot) send(chatID int64, resp practice.Response) {
	msg := tgbotapi.NewMessage(chatID, resp.Text)
	if keyboard, ok := renderKeyboard(resp.Actions); ok {
		msg.ReplyMarkup = keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(chatID, practice.Response{Text: text})
}

// renderKeyboard maps typed engine actions onto an inline keyboard.
func renderKeyboard(rows [][]practice.Action) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, a := range row {
			buttons = append(buttons,
				tgbotapi.NewInlineKeyboardButtonData(a.Label, callbackData(a)))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...), true
}

func callbackData(a practice.Action) string {
	switch a.Kind {
	case practice.ActionReveal:
		return fmt.Sprintf("reveal %d", a.WordID)
	case practice.ActionJudgeCorrect:
		return fmt.Sprintf("finish %d correct", a.WordID)
	case practice.ActionJudgeIncorrect:
		return fmt.Sprintf("finish %d incorrect", a.WordID)
	case practice.ActionJudgeDelete:
		return fmt.Sprintf("finish %d delete", a.WordID)
	case practice.ActionLearn:
		return fmt.Sprintf("learn %d", a.WordID)
	case practice.ActionSkip:
		return fmt.Sprintf("skip %d", a.WordID)
	case practice.ActionPractice:
		return "practice"
	default:
		return "noop"
	}
}

// SendReminder implements reminder.Notifier.
func (b *Bot) SendReminder(userID int64, wordCount int) error {
	msg := tgbotapi.NewMessage(userID,
		fmt.Sprintf("Time to practice! You have %d words waiting.", wordCount))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Practice (%d)", wordCount), "practice"),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
