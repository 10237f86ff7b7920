package sheets

import (
	"context"

	"github.com/yanxingzhi/event-form-multi/internal/models"
)

// MatchColumns are the two cell positions compared by a lookup.
type MatchColumns struct {
	Key   int
	Match int
}

// DefaultMatchColumns compares the first and fifth cells.
var DefaultMatchColumns = MatchColumns{Key: 0, Match: 4}

// FindRow returns the first row whose key and match cells equal the given
// values. Rows too short to hold either cell never match.
func FindRow(rows []models.Row, cols MatchColumns, key, match string) models.LookupResult {
	for _, row := range rows {
		k, ok := cell(row, cols.Key)
		if !ok || k != key {
			continue
		}
		if m, ok := cell(row, cols.Match); ok && m == match {
			return models.LookupResult{Found: true, Row: row}
		}
	}
	return models.LookupResult{}
}

func cell(row models.Row, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}

// Lookup reads rng and scans it with FindRow.
func (c *Client) Lookup(ctx context.Context, rng string, cols MatchColumns, key, match string) (models.LookupResult, error) {
	rows, err := c.ReadRange(ctx, rng)
	if err != nil {
		return models.LookupResult{}, err
	}
	return FindRow(rows, cols, key, match), nil
}

func (c *Client) AppendSubmission(ctx context.Context, rng string, s models.Submission) error {
	return c.AppendRow(ctx, rng, s.Row())
}

func (c *Client) AppendRegistration(ctx context.Context, rng string, r models.Registration) error {
	return c.AppendRow(ctx, rng, r.Row())
}
