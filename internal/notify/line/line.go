package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Provider pushes text messages through the LINE Messaging API.
type Provider struct {
	token   string
	pushURL string
	http    *http.Client
}

func New(channelToken, pushURL string, hc *http.Client) *Provider {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Provider{token: channelToken, pushURL: strings.TrimSpace(pushURL), http: hc}
}

func (p *Provider) Name() string { return "line" }

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

func (p *Provider) Push(ctx context.Context, to, text string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("line push: recipient is empty")
	}

	body, err := json.Marshal(pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.pushURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("line push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("line push: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
