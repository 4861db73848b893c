package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/ws"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// TelegramSink зеркалирует доменные события в служебный чат.
// Регистрируется в хабе как обычный наблюдатель: отказ чата выбрасывает
// его из рассылки, на остальных наблюдателей это не влияет.
type TelegramSink struct {
	bot    *bot.Bot
	chatID string
	logger *zap.Logger
}

func NewTelegramSink(token, chatID string, logger *zap.Logger) (*TelegramSink, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramSink{bot: b, chatID: chatID, logger: logger}, nil
}

func (s *TelegramSink) Send(event ws.Event) error {
	// Служебные ping-события в чат не идут
	if event.Type == "ping" {
		return nil
	}

	payload, err := json.MarshalIndent(event.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: s.chatID,
		Text:   fmt.Sprintf("%s\n%s", event.Type, payload),
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}

func (s *TelegramSink) Close() error {
	return nil
}
