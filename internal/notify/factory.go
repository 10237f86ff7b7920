package notify

import (
	"fmt"
	"net/http"

	"github.com/yanxingzhi/event-form-multi/internal/config"
	"github.com/yanxingzhi/event-form-multi/internal/notify/line"
	"github.com/yanxingzhi/event-form-multi/internal/notify/telegram"
)

func NewNotifier(cfg config.Config, hc *http.Client) (Notifier, error) {
	switch cfg.NotifyProvider {
	case config.ProviderLine:
		return line.New(cfg.LineChannelToken, cfg.LinePushURL, hc), nil
	case config.ProviderTelegram:
		return telegram.New(cfg.TelegramToken, hc)
	case config.ProviderNone, "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown notify provider: %s", cfg.NotifyProvider)
	}
}
