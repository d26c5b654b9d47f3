package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/internal/tracker"
	"github.com/example/growthbot/pkg/models"
)

type fakeAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	stopped  bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(chan tgbotapi.Update, 4)}
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() { f.stopped = true }

func (f *fakeAPI) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	switch m := f.sent[len(f.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return m.Text
	case tgbotapi.EditMessageTextConfig:
		return m.Text
	default:
		t.Fatalf("unexpected chattable %T", m)
		return ""
	}
}

type fakeTracker struct {
	table    models.ProgressTable
	statuses []models.Status
	err      error
}

func (f *fakeTracker) snapshot() *tracker.Snapshot {
	engine := analytics.NewEngine(f.Badges())
	last := f.table.Records[len(f.table.Records)-1]
	return &tracker.Snapshot{
		Date:      last.Date,
		Challenge: last.Challenge,
		Status:    last.Status,
		Quote:     "Keep going.",
		Summary:   engine.Summarize(f.table),
		Table:     f.table,
	}
}

func (f *fakeTracker) Snapshot(context.Context) (*tracker.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot(), nil
}

func (f *fakeTracker) SetStatus(_ context.Context, status models.Status) (*tracker.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.statuses = append(f.statuses, status)
	f.table.Records[len(f.table.Records)-1].Status = status
	return f.snapshot(), nil
}

func (f *fakeTracker) Table(context.Context) (models.ProgressTable, error) {
	return f.table, f.err
}

func (f *fakeTracker) Quote() (string, error) { return "Keep going.", nil }

func (f *fakeTracker) Badges() []models.Badge {
	return []models.Badge{{Threshold: 1, Label: "First Step"}, {Threshold: 5, Label: "Five"}}
}

func newTestTracker() *fakeTracker {
	return &fakeTracker{table: models.ProgressTable{Records: []models.ProgressRecord{
		{Date: "2024-01-01", Challenge: "Learn", Status: models.StatusCompleted},
		{Date: "2024-01-02", Challenge: "Try again", Status: models.StatusPending},
	}}}
}

func commandMessage(chatID int64, command string) *tgbotapi.Message {
	text := "/" + command
	return &tgbotapi.Message{
		MessageID: 7,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}
}

func callbackQuery(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 9, Chat: &tgbotapi.Chat{ID: chatID}},
	}
}

func TestHandleCommandToday(t *testing.T) {
	api := newFakeAPI()
	b := newBot(api, newTestTracker(), nil, zap.NewNop())

	require.NoError(t, b.HandleCommand(context.Background(), commandMessage(1, "today")))

	text := api.lastText(t)
	assert.Contains(t, text, "Try again")
	assert.Contains(t, text, "2024-01-02")
	msg := api.sent[0].(tgbotapi.MessageConfig)
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, "status:Pending", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "status:Completed", *markup.InlineKeyboard[0][1].CallbackData)
}

func TestHandleCommandDone(t *testing.T) {
	api := newFakeAPI()
	tr := newTestTracker()
	b := newBot(api, tr, nil, zap.NewNop())

	require.NoError(t, b.HandleCommand(context.Background(), commandMessage(1, "done")))

	assert.Equal(t, []models.Status{models.StatusCompleted}, tr.statuses)
	assert.Contains(t, api.lastText(t), "Progress updated successfully!")
}

func TestHandleCommandStatsAndBadges(t *testing.T) {
	api := newFakeAPI()
	b := newBot(api, newTestTracker(), nil, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, b.HandleCommand(ctx, commandMessage(1, "stats")))
	assert.Contains(t, api.lastText(t), "Completion Rate: 50.0%")

	require.NoError(t, b.HandleCommand(ctx, commandMessage(1, "badges")))
	assert.Contains(t, api.lastText(t), "First Step")
}

func TestHandleCommandDashboard(t *testing.T) {
	api := newFakeAPI()
	b := newBot(api, newTestTracker(), nil, zap.NewNop())

	require.NoError(t, b.HandleCommand(context.Background(), commandMessage(1, "dashboard")))

	text := api.lastText(t)
	assert.Contains(t, text, "Today's Challenge")
	assert.Contains(t, text, "Recent History")
	assert.Contains(t, text, "Every small step counts")
}

func TestHandleCommandExport(t *testing.T) {
	api := newFakeAPI()
	b := newBot(api, newTestTracker(), nil, zap.NewNop())

	require.NoError(t, b.HandleCommand(context.Background(), commandMessage(1, "export")))

	require.Len(t, api.sent, 1)
	doc, ok := api.sent[0].(tgbotapi.DocumentConfig)
	require.True(t, ok)
	file, ok := doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, "growth-progress.xlsx", file.Name)
	assert.NotEmpty(t, file.Bytes)
	assert.Contains(t, doc.Caption, "2 challenges")
}

func TestHandleCommandUnknown(t *testing.T) {
	api := newFakeAPI()
	b := newBot(api, newTestTracker(), nil, zap.NewNop())

	require.NoError(t, b.HandleCommand(context.Background(), commandMessage(1, "nope")))
	assert.Contains(t, api.lastText(t), "Unknown command")
}

func TestHandleCallbackStatus(t *testing.T) {
	api := newFakeAPI()
	tr := newTestTracker()
	b := newBot(api, tr, nil, zap.NewNop())

	require.NoError(t, b.HandleCallback(context.Background(), callbackQuery(1, "status:Completed")))

	assert.Equal(t, []models.Status{models.StatusCompleted}, tr.statuses)
	edit, ok := api.sent[0].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 9, edit.MessageID)
	assert.Contains(t, edit.Text, "Completed")

	require.Len(t, api.requests, 1)
	answer := api.requests[0].(tgbotapi.CallbackConfig)
	assert.Equal(t, "Progress updated successfully! 🎉", answer.Text)
}

func TestHandleCallbackRejectsUnknownStatus(t *testing.T) {
	api := newFakeAPI()
	tr := newTestTracker()
	b := newBot(api, tr, nil, zap.NewNop())

	err := b.HandleCallback(context.Background(), callbackQuery(1, "status:Done"))
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
	assert.Empty(t, tr.statuses)
	assert.Len(t, api.requests, 1)
}

func TestHandleUpdateOwnerOnly(t *testing.T) {
	api := newFakeAPI()
	tr := newTestTracker()
	b := newBot(api, tr, &BotConfig{OwnerChatID: 42, UpdateTimeout: 1}, zap.NewNop())

	b.handleUpdate(context.Background(), tgbotapi.Update{Message: commandMessage(7, "done")})

	assert.Empty(t, tr.statuses)
	assert.Contains(t, api.lastText(t), "single owner")
}

func TestHandleUpdateReportsErrors(t *testing.T) {
	api := newFakeAPI()
	tr := newTestTracker()
	tr.err = errors.New("disk full")
	b := newBot(api, tr, nil, zap.NewNop())

	b.handleUpdate(context.Background(), tgbotapi.Update{Message: commandMessage(1, "today")})

	assert.Contains(t, api.lastText(t), "disk full")
}

func TestSendReminder(t *testing.T) {
	api := newFakeAPI()
	tr := newTestTracker()
	snap := tr.snapshot()

	b := newBot(api, tr, DefaultConfig(), zap.NewNop())
	require.NoError(t, b.SendReminder(context.Background(), snap))
	assert.Empty(t, api.sent, "no owner chat configured")

	b = newBot(api, tr, &BotConfig{OwnerChatID: 42}, zap.NewNop())
	require.NoError(t, b.SendReminder(context.Background(), snap))
	msg := api.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "Try again")
}

func TestStartStopsOnCancel(t *testing.T) {
	api := newFakeAPI()
	b := newBot(api, newTestTracker(), nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	api.updates <- tgbotapi.Update{UpdateID: 1, Message: commandMessage(1, "quote")}

	done := make(chan error, 1)
	go func() { done <- b.Start(ctx) }()

	require.Eventually(t, func() bool { return len(api.updates) == 0 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("bot did not stop")
	}
	assert.True(t, api.stopped)
}
