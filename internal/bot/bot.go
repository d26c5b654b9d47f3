// Package bot is the Telegram front end: it shows today's challenge, takes the
// status update and sends statistics, badges, history and exports.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/growthbot/internal/tracker"
	"github.com/example/growthbot/pkg/models"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Tracker is the part of the tracker service the bot drives
type Tracker interface {
	Snapshot(ctx context.Context) (*tracker.Snapshot, error)
	SetStatus(ctx context.Context, status models.Status) (*tracker.Snapshot, error)
	Table(ctx context.Context) (models.ProgressTable, error)
	Quote() (string, error)
	Badges() []models.Badge
}

// botAPI is the subset of *tgbotapi.BotAPI used by the bot
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot application
type Bot struct {
	api     botAPI
	tracker Tracker
	config  *BotConfig
	logger  *zap.Logger
}

// New connects to Telegram with token and creates a bot instance
func New(token string, t Tracker, config *BotConfig, logger *zap.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	logger.Info("authorized on telegram", zap.String("account", api.Self.UserName))

	return newBot(api, t, config, logger), nil
}

func newBot(api botAPI, t Tracker, config *BotConfig, logger *zap.Logger) *Bot {
	if config == nil {
		config = DefaultConfig()
	}
	return &Bot{api: api, tracker: t, config: config, logger: logger}
}

// Start polls for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.config.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// Stop stops receiving updates
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// SendReminder nudges the owner about a pending challenge
func (b *Bot) SendReminder(ctx context.Context, snap *tracker.Snapshot) error {
	if b.config.OwnerChatID == 0 {
		b.logger.Warn("no owner chat configured, reminder skipped")
		return nil
	}

	text := fmt.Sprintf("⏰ Today's challenge is still pending:\n\n%s\n\n%s", snap.Challenge, snap.Quote)
	msg := tgbotapi.NewMessage(b.config.OwnerChatID, text)
	msg.ReplyMarkup = createKeyboard(statusButtons())
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}

// allowed reports whether chatID may use the bot
func (b *Bot) allowed(chatID int64) bool {
	return b.config.OwnerChatID == 0 || b.config.OwnerChatID == chatID
}

// handleUpdate processes a single update
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	var err error
	switch {
	case update.Message != nil:
		if !b.allowed(update.Message.Chat.ID) {
			b.reply(update.Message.Chat.ID, "This bot tracks a single owner's challenges.")
			return
		}
		if update.Message.IsCommand() {
			err = b.HandleCommand(ctx, update.Message)
		} else {
			b.showMainMenu(update.Message.Chat.ID)
		}
	case update.CallbackQuery != nil:
		if update.CallbackQuery.Message == nil || !b.allowed(update.CallbackQuery.Message.Chat.ID) {
			return
		}
		err = b.HandleCallback(ctx, update.CallbackQuery)
	}

	if err != nil {
		b.logger.Error("failed to handle update", zap.Int("update_id", update.UpdateID), zap.Error(err))
		if chatID, ok := chatOf(update); ok {
			b.reply(chatID, "⚠️ Something went wrong: "+err.Error())
		}
	}
}

func chatOf(update tgbotapi.Update) (int64, bool) {
	if update.Message != nil {
		return update.Message.Chat.ID, true
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// showMainMenu sends the main menu keyboard
func (b *Bot) showMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "🌱 Growth Mindset Daily Challenge\n\nChoose an option:")
	msg.ReplyMarkup = createKeyboard(MainMenuButtons())
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send menu", zap.Error(err))
	}
}

// MainMenuButtons returns the main menu layout
func MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "🎯 Today", CallbackData: callbackToday}},
		{{Text: "📈 Statistics", CallbackData: callbackStats}, {Text: "🏆 Badges", CallbackData: callbackBadges}},
		{{Text: "📝 History", CallbackData: callbackHistory}, {Text: "📤 Export", CallbackData: callbackExport}},
	}
}

func statusButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "⏳ Pending", CallbackData: callbackStatusPrefix + string(models.StatusPending)},
			{Text: "✅ Completed", CallbackData: callbackStatusPrefix + string(models.StatusCompleted)},
		},
		{{Text: "📋 Menu", CallbackData: callbackMenu}},
	}
}
