package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// OwnerChatID is the only chat served; 0 serves any chat
	OwnerChatID int64
	// UpdateTimeout is the long-polling timeout in seconds
	UpdateTimeout int
	// ExportFileName names the xlsx document sent by /export
	ExportFileName string
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		UpdateTimeout:  60,
		ExportFileName: "growth-progress.xlsx",
	}
}
