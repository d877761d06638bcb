// internal/app/notification_service.go
package app

import (
	"context"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Notifier delivers text to the configured chat.
type Notifier interface {
	SendMessage(ctx context.Context, text string) (*telebot.Message, error)
}

// NotificationService sends status notifications to a single chat.
type NotificationService struct {
	telegramClient domainTelegram.Client
	chatID         int64
	limiter        *rate.Limiter // nil disables pacing
	logger         logrus.FieldLogger
}

func NewNotificationService(
	tc domainTelegram.Client,
	chatID int64,
	limiter *rate.Limiter,
	logger logrus.FieldLogger,
) *NotificationService {
	return &NotificationService{
		telegramClient: tc,
		chatID:         chatID,
		limiter:        limiter,
		logger:         logger,
	}
}

// SendMessage waits for the rate limiter, then sends text and returns the
// delivered message as-is. Any failure is logged and returned as a TransportError.
func (s *NotificationService) SendMessage(ctx context.Context, text string) (*telebot.Message, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.WithError(err).WithField("chat_id", s.chatID).Error("Rate limiter wait failed")
			return nil, &homework.TransportError{Op: "send", Err: err}
		}
	}

	msg, err := s.telegramClient.SendMessage(s.chatID, text, nil)
	if err != nil {
		s.logger.WithError(err).WithField("chat_id", s.chatID).Error("Failed to send Telegram message")
		return nil, &homework.TransportError{Op: "send", Err: err}
	}
	s.logger.WithField("chat_id", s.chatID).Debug("Telegram message sent")
	return msg, nil
}
