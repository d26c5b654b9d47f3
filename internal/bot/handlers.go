package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/internal/excel"
	"github.com/example/growthbot/internal/render"
	"github.com/example/growthbot/pkg/models"
)

const (
	callbackStatusPrefix = "status:"
	callbackMenu         = "menu"
	callbackToday        = "today"
	callbackStats        = "stats"
	callbackBadges       = "badges"
	callbackHistory      = "history"
	callbackExport       = "export"
)

// HandleCommand processes bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start", "help":
		return b.handleStart(chatID)
	case "menu":
		b.showMainMenu(chatID)
		return nil
	case "today":
		return b.handleToday(ctx, chatID)
	case "done":
		return b.handleStatusCommand(ctx, chatID, models.StatusCompleted)
	case "pending":
		return b.handleStatusCommand(ctx, chatID, models.StatusPending)
	case "stats":
		return b.handleStats(ctx, chatID)
	case "dashboard":
		return b.handleDashboard(ctx, chatID)
	case "badges":
		return b.handleBadges(ctx, chatID)
	case "history":
		return b.handleHistory(ctx, chatID)
	case "quote":
		return b.handleQuote(chatID)
	case "export":
		return b.handleExport(ctx, chatID)
	default:
		return b.handleUnknownCommand(chatID)
	}
}

// HandleCallback processes inline keyboard presses
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Answer the callback so the client stops its spinner
	answer := ""
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, answer)); err != nil {
			b.logger.Warn("failed to answer callback", zap.Error(err))
		}
	}()

	if strings.HasPrefix(data, callbackStatusPrefix) {
		status, err := models.ParseStatus(strings.TrimPrefix(data, callbackStatusPrefix))
		if err != nil {
			return err
		}
		snap, err := b.tracker.SetStatus(ctx, status)
		if err != nil {
			return err
		}
		answer = "Progress updated successfully! 🎉"

		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, callback.Message.MessageID,
			render.TodayMessage(snap), createKeyboard(statusButtons()))
		if _, err := b.api.Send(edit); err != nil {
			// Telegram rejects edits that change nothing; the status is saved either way
			b.logger.Debug("failed to edit challenge message", zap.Error(err))
		}
		return nil
	}

	switch data {
	case callbackMenu:
		b.showMainMenu(chatID)
		return nil
	case callbackToday:
		return b.handleToday(ctx, chatID)
	case callbackStats:
		return b.handleStats(ctx, chatID)
	case callbackBadges:
		return b.handleBadges(ctx, chatID)
	case callbackHistory:
		return b.handleHistory(ctx, chatID)
	case callbackExport:
		return b.handleExport(ctx, chatID)
	default:
		return fmt.Errorf("unknown callback %q", data)
	}
}

func (b *Bot) handleStart(chatID int64) error {
	welcomeText := `Welcome to the Growth Mindset Daily Challenge! 🌱

Available commands:
/today - Show today's challenge
/done - Mark today's challenge completed
/pending - Mark today's challenge pending
/stats - Show your statistics
/dashboard - Everything on one page
/badges - Show your achievements
/history - Show recent history
/quote - Get a motivational quote
/export - Download your history as Excel`

	msg := tgbotapi.NewMessage(chatID, welcomeText)
	msg.ReplyMarkup = createKeyboard(MainMenuButtons())
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleToday(ctx context.Context, chatID int64) error {
	snap, err := b.tracker.Snapshot(ctx)
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, render.TodayMessage(snap))
	msg.ReplyMarkup = createKeyboard(statusButtons())
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) handleStatusCommand(ctx context.Context, chatID int64, status models.Status) error {
	snap, err := b.tracker.SetStatus(ctx, status)
	if err != nil {
		return err
	}

	text := "Progress updated successfully! 🎉\n\n" + render.TodayMessage(snap)
	_, err = b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) error {
	snap, err := b.tracker.Snapshot(ctx)
	if err != nil {
		return err
	}
	_, err = b.api.Send(tgbotapi.NewMessage(chatID, render.StatsMessage(snap)))
	return err
}

func (b *Bot) handleDashboard(ctx context.Context, chatID int64) error {
	snap, err := b.tracker.Snapshot(ctx)
	if err != nil {
		return err
	}
	_, err = b.api.Send(tgbotapi.NewMessage(chatID, render.FullMessage(snap, b.tracker.Badges())))
	return err
}

func (b *Bot) handleBadges(ctx context.Context, chatID int64) error {
	snap, err := b.tracker.Snapshot(ctx)
	if err != nil {
		return err
	}
	_, err = b.api.Send(tgbotapi.NewMessage(chatID, render.BadgesMessage(snap, b.tracker.Badges())))
	return err
}

func (b *Bot) handleHistory(ctx context.Context, chatID int64) error {
	snap, err := b.tracker.Snapshot(ctx)
	if err != nil {
		return err
	}
	_, err = b.api.Send(tgbotapi.NewMessage(chatID, render.HistoryMessage(snap.Recent)))
	return err
}

func (b *Bot) handleQuote(chatID int64) error {
	quote, err := b.tracker.Quote()
	if err != nil {
		return err
	}
	_, err = b.api.Send(tgbotapi.NewMessage(chatID, "💫 "+quote))
	return err
}

func (b *Bot) handleExport(ctx context.Context, chatID int64) error {
	table, err := b.tracker.Table(ctx)
	if err != nil {
		return err
	}

	buf, err := excel.Export(table)
	if err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: b.config.ExportFileName, Bytes: buf.Bytes()})
	doc.Caption = fmt.Sprintf("%d challenges, %s completed", table.Len(), render.Percent(analytics.CompletionRate(table)))
	_, err = b.api.Send(doc)
	return err
}

func (b *Bot) handleUnknownCommand(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /menu to show the main menu.")
	msg.ReplyMarkup = createKeyboard(MainMenuButtons())
	_, err := b.api.Send(msg)
	return err
}
