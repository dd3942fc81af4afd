package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"panel/internal/config"
	"panel/internal/models"
)

// Notifier forwards panel notifications to a Telegram chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewNotifier creates a Telegram notifier. Returns nil when forwarding is
// disabled or not configured; callers treat a nil notifier as "no external
// channel".
func NewNotifier(cfg *config.Config, logger *zap.Logger) (*Notifier, error) {
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
		logger.Info("Telegram forwarding is disabled")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", botAPI.Self.UserName))

	return &Notifier{
		api:    botAPI,
		chatID: cfg.Telegram.ChatID,
		logger: logger,
	}, nil
}

// Notify sends the notification text to the configured chat.
func (n *Notifier) Notify(notification *models.Notification) error {
	text := fmt.Sprintf("[%s] %s\n%s", notification.Type, notification.Title, notification.Message)
	msg := tgbotapi.NewMessage(n.chatID, text)

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	return nil
}
