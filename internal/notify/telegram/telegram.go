package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Provider sends confirmations as Telegram chat messages. Recipients are
// numeric chat IDs.
type Provider struct {
	bot *tgbotapi.BotAPI
}

func New(token string, hc *http.Client) (*Provider, error) {
	return NewWithEndpoint(token, tgbotapi.APIEndpoint, hc)
}

// NewWithEndpoint talks to a Bot API server other than api.telegram.org.
// endpoint is a format string taking the token and the method name.
func NewWithEndpoint(token, endpoint string, hc *http.Client) (*Provider, error) {
	if hc == nil {
		hc = &http.Client{}
	}
	b, err := tgbotapi.NewBotAPIWithClient(token, endpoint, hc)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	b.Debug = false
	return &Provider{bot: b}, nil
}

func (p *Provider) Name() string { return "telegram" }

func (p *Provider) Push(ctx context.Context, to, text string) error {
	chatID, err := strconv.ParseInt(strings.TrimSpace(to), 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: invalid chat id %q", to)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := p.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
