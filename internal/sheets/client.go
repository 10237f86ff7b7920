package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/yanxingzhi/event-form-multi/internal/models"
	"github.com/yanxingzhi/event-form-multi/internal/util"
)

// OperationError is a rejected Sheets call. Body holds the upstream reply as is.
type OperationError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *OperationError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("sheets %s: status=%d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("sheets %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// Detail is the text surfaced to callers when the sheet rejects a write.
func (e *OperationError) Detail() string {
	if e.Body != "" {
		return e.Body
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "sheets " + e.Op + " failed"
}

type Options struct {
	// HTTPClient is the base client wrapped with the bearer transport.
	HTTPClient *http.Client
	// Endpoint overrides the Sheets API base URL.
	Endpoint string
}

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

// New returns a client that authenticates every call with accessToken.
func New(ctx context.Context, accessToken, spreadsheetID string, opts Options) (*Client, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.New("sheets: access token is required")
	}
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}

	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	clientOpts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}
	if ep := strings.TrimSpace(opts.Endpoint); ep != "" {
		if !strings.HasSuffix(ep, "/") {
			ep += "/"
		}
		clientOpts = append(clientOpts, option.WithEndpoint(ep))
	}

	srv, err := sheetsv4.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

// ReadRange returns the rows of rng. A reply without values is an empty sheet.
func (c *Client) ReadRange(ctx context.Context, rng string) ([]models.Row, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, operationError("read", err)
	}

	rows := make([]models.Row, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make(models.Row, len(values))
		for i := range values {
			row[i] = util.Cell(values, i)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends row after the last row of rng using RAW input.
func (c *Client) AppendRow(ctx context.Context, rng string, row models.Row) error {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{values}}

	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return operationError("append", err)
	}
	return nil
}

func operationError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &OperationError{Op: op, StatusCode: apiErr.Code, Body: apiErr.Body, Err: err}
	}
	return &OperationError{Op: op, Err: err}
}
