// Package gsheets implements the sheetpos Backend over the Google Sheets
// API. A client built from service-account credentials is writable; one
// built from an API key is read-only and refuses mutations locally.
package gsheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mkartashov/sheetpos"
)

// Client talks to one spreadsheet.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	readOnly      bool
}

// Option configures a Client.
type Option func(*settings)

type settings struct {
	credentialsJSON []byte
	apiKey          string
	clientOptions   []option.ClientOption
}

// WithServiceAccount supplies service-account credentials JSON. The client
// becomes writable.
func WithServiceAccount(credentialsJSON []byte) Option {
	return func(s *settings) { s.credentialsJSON = credentialsJSON }
}

// WithAPIKey supplies an API key. The client stays read-only; only publicly
// readable spreadsheets are reachable this way.
func WithAPIKey(key string) Option {
	return func(s *settings) { s.apiKey = key }
}

// WithClientOption passes an extra option to the underlying service, e.g. a
// custom HTTP client in tests.
func WithClientOption(opt option.ClientOption) Option {
	return func(s *settings) { s.clientOptions = append(s.clientOptions, opt) }
}

// New creates a Client for one spreadsheet. Exactly one credential source
// must be supplied; a missing one is a configuration error, reported once
// at construction rather than per call.
func New(ctx context.Context, spreadsheetID string, opts ...Option) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id: %w", sheetpos.ErrNotConfigured)
	}
	cfg := &settings{}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Client{spreadsheetID: spreadsheetID}
	clientOpts := cfg.clientOptions

	switch {
	case len(cfg.credentialsJSON) > 0:
		jwt, err := google.JWTConfigFromJSON(cfg.credentialsJSON, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("parse service-account credentials: %w", err)
		}
		clientOpts = append(clientOpts, option.WithHTTPClient(jwt.Client(ctx)))
	case cfg.apiKey != "":
		clientOpts = append(clientOpts,
			option.WithAPIKey(cfg.apiKey),
			option.WithScopes(sheets.SpreadsheetsReadonlyScope),
		)
		c.readOnly = true
	default:
		return nil, fmt.Errorf("no credentials: %w", sheetpos.ErrNotConfigured)
	}

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	c.svc = svc
	return c, nil
}

// ReadOnly reports whether the client was built without write credentials.
func (c *Client) ReadOnly() bool {
	return c.readOnly
}

// GetRange reads cell values from an A1 range.
func (c *Client) GetRange(ctx context.Context, a1 string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("values.get %q: %w", a1, err)
	}
	return toStrings(resp.Values), nil
}

// UpdateRange overwrites cells starting at the top-left of the range. RAW
// input keeps the locale-encoded cells exactly as the codec rendered them.
func (c *Client) UpdateRange(ctx context.Context, a1 string, rows [][]string) error {
	_, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, a1, valueRange(rows)).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("values.update %q: %w", a1, err)
	}
	return nil
}

// AppendRows appends rows after the last data row of the range's table.
func (c *Client) AppendRows(ctx context.Context, a1 string, rows [][]string) error {
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, a1, valueRange(rows)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("values.append %q: %w", a1, err)
	}
	return nil
}

// DeleteRows removes whole rows [start, end) by 0-based index.
func (c *Client) DeleteRows(ctx context.Context, sheetID int64, start, end int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: start,
					EndIndex:   end,
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete rows [%d,%d) of sheet %d: %w", start, end, sheetID, err)
	}
	return nil
}

// SheetID resolves a sheet title to its numeric id with one metadata read
// covering all sheets.
func (c *Client) SheetID(ctx context.Context, title string) (int64, error) {
	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("spreadsheet metadata: %w", err)
	}
	for _, sh := range resp.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q: %w", title, sheetpos.ErrNotFound)
}

func valueRange(rows [][]string) *sheets.ValueRange {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}
	return &sheets.ValueRange{Values: values}
}

func toStrings(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows
}
