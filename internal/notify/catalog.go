package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yanxingzhi/event-form-multi/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

// Catalog reads the static JSON array of events published next to the form.
type Catalog struct {
	url  string
	http *http.Client
}

func NewCatalog(url string, hc *http.Client) *Catalog {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Catalog{url: strings.TrimSpace(url), http: hc}
}

func (c *Catalog) Events(ctx context.Context) ([]models.Event, error) {
	if c.url == "" {
		return nil, errors.New("event catalog url is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch events: status=%d", resp.StatusCode)
	}

	var events []models.Event
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// FindEvent returns the event whose id equals activityID.
func FindEvent(events []models.Event, activityID string) (models.Event, error) {
	for _, e := range events {
		if string(e.ID) == activityID {
			return e, nil
		}
	}
	return models.Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, activityID)
}
