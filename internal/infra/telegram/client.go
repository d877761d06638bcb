// internal/infra/telegram/client.go
package telegram

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

// NewBot builds a send-only bot. It is created offline, so a bad token first
// shows up on the first send rather than at startup. An empty apiURL means
// the public Bot API.
func NewBot(token, apiURL string, timeout time.Duration) (*telebot.Bot, error) {
	return telebot.NewBot(telebot.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
		Client:  &http.Client{Timeout: timeout},
	})
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the given chat and returns the delivered message.
func (tba *TelebotAdapter) SendMessage(chatID int64, text string, options *telebot.SendOptions) (*telebot.Message, error) {
	if options == nil {
		options = &telebot.SendOptions{}
	}
	msg, err := tba.bot.Send(telebot.ChatID(chatID), text, options)
	if err != nil {
		return nil, redactToken(err, tba.bot.Token)
	}
	return msg, nil
}

// redactedError hides the bot token that telebot puts in request URLs.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// redactToken strips token from err's text. The request URL is
// <api>/bot<token>/<method>, so transport errors carry the token verbatim.
func redactToken(err error, token string) error {
	if token == "" {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, token, "<token>")
	}
	if msg := err.Error(); strings.Contains(msg, token) {
		return &redactedError{msg: strings.ReplaceAll(msg, token, "<token>"), err: err}
	}
	return err
}
