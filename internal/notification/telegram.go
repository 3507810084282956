package notification

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stpnv0/DocBooker/internal/domain"
	"github.com/wb-go/wbf/logger"
)

// TelegramNotifier posts operational updates to a single operations chat.
// With an empty token the notifier is a no-op.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger logger.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) NotifyBookingConfirmed(ctx context.Context, d *domain.BookingDetails) {
	text := fmt.Sprintf(
		"*Запись подтверждена*\n\n"+"Врач: %s (%s)\n"+"Приём (время в UTC): %s\n"+"Мест: %d",
		d.DoctorName, d.Specialization,
		d.StartTime.Format("02.01.2006 15:04"),
		d.Booking.SeatsBooked,
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) NotifyBookingsExpired(ctx context.Context, count int) {
	text := fmt.Sprintf(
		"*Просроченные брони сняты*\n\n"+"Освобождено броней: %d",
		count,
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)")
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", n.chatID),
			logger.String("error", err.Error()),
		)
	}
}
